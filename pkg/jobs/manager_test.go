package jobs

import (
	"context"
	"testing"
	"time"
)

type mockJob struct {
	name        string
	schedule    string
	executeFunc func(ctx context.Context) error
	executed    bool
}

func (m *mockJob) Execute(ctx context.Context) error {
	m.executed = true
	if m.executeFunc != nil {
		return m.executeFunc(ctx)
	}
	return nil
}

func (m *mockJob) Name() string {
	return m.name
}

func (m *mockJob) Schedule() string {
	return m.schedule
}

func TestJobManager_RegisterJob(t *testing.T) {
	manager := NewJobManager(time.UTC)

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{
			name: "valid job",
			job: &mockJob{
				name:     "test-job",
				schedule: "@every 1s",
			},
			wantErr: false,
		},
		{
			name:    "nil job",
			job:     nil,
			wantErr: true,
		},
		{
			name: "invalid schedule",
			job: &mockJob{
				name:     "invalid-job",
				schedule: "invalid-cron",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.RegisterJob(tt.job)
			if (err != nil) != tt.wantErr {
				t.Errorf("RegisterJob() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobManager_GetJobs(t *testing.T) {
	manager := NewJobManager(nil)

	jobs := manager.GetJobs()
	if len(jobs) != 0 {
		t.Errorf("Expected 0 jobs initially, got %d", len(jobs))
	}

	testJob := &mockJob{
		name:     "test-job",
		schedule: "@every 1s",
	}
	if err := manager.RegisterJob(testJob); err != nil {
		t.Fatalf("Unexpected error registering job: %v", err)
	}

	jobs = manager.GetJobs()
	if len(jobs) != 1 {
		t.Fatalf("Expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Name() != "test-job" {
		t.Errorf("Expected job name test-job, got %s", jobs[0].Name())
	}
}

func TestJobManager_StartStop(t *testing.T) {
	manager := NewJobManager(time.UTC)

	executed := make(chan struct{}, 1)
	job := &mockJob{
		name:     "ticker-job",
		schedule: "@every 10ms",
		executeFunc: func(ctx context.Context) error {
			select {
			case executed <- struct{}{}:
			default:
			}
			return nil
		},
	}
	if err := manager.RegisterJob(job); err != nil {
		t.Fatalf("Unexpected error registering job: %v", err)
	}

	manager.Start()
	select {
	case <-executed:
	case <-time.After(2 * time.Second):
		t.Error("Job never fired after Start()")
	}
	manager.Stop()
}
