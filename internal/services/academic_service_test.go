package services

import (
	"context"
	"errors"
	"testing"
)

func TestTrackDeleteRestrictedByEnrollment(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	track, err := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Informatique"})
	if err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}
	level, err := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "L1", Name: "Licence 1"})
	if err != nil {
		t.Fatalf("CreateLevel: %v", err)
	}
	enrollment, err := sm.Academics().CreateEnrollment(ctx, &EnrollmentCreateRequest{
		StudentID:    student.ID,
		TrackID:      track.ID,
		LevelID:      level.ID,
		AcademicYear: "2025-2026",
	})
	if err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}

	if err := sm.Academics().DeleteTrack(ctx, track.ID); !IsRestrictedError(err) {
		t.Errorf("DeleteTrack error = %v, want restricted", err)
	}
	if err := sm.Academics().DeleteLevel(ctx, level.ID); !IsRestrictedError(err) {
		t.Errorf("DeleteLevel error = %v, want restricted", err)
	}

	// Removing the enrollment unblocks both deletions.
	if err := sm.Academics().DeleteEnrollment(ctx, enrollment.ID); err != nil {
		t.Fatalf("DeleteEnrollment: %v", err)
	}
	if err := sm.Academics().DeleteTrack(ctx, track.ID); err != nil {
		t.Errorf("DeleteTrack after unblock: %v", err)
	}
	if err := sm.Academics().DeleteLevel(ctx, level.ID); err != nil {
		t.Errorf("DeleteLevel after unblock: %v", err)
	}
}

func TestDuplicateTrackCode(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Informatique"}); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}
	_, err := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Autre"})
	if !IsConflictError(err) {
		t.Errorf("CreateTrack error = %v, want conflict", err)
	}
}

func TestCreateEnrollmentUnknownReferences(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	student := mustCreateStudent(t, sm, "Durand", "Alice")
	track, _ := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Informatique"})
	level, _ := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "L1", Name: "Licence 1"})

	tests := []struct {
		name    string
		req     *EnrollmentCreateRequest
		wantErr error
	}{
		{
			"unknown student",
			&EnrollmentCreateRequest{StudentID: 9999, TrackID: track.ID, LevelID: level.ID, AcademicYear: "2025-2026"},
			ErrStudentNotFound,
		},
		{
			"unknown track",
			&EnrollmentCreateRequest{StudentID: student.ID, TrackID: 9999, LevelID: level.ID, AcademicYear: "2025-2026"},
			ErrTrackNotFound,
		},
		{
			"unknown level",
			&EnrollmentCreateRequest{StudentID: student.ID, TrackID: track.ID, LevelID: 9999, AcademicYear: "2025-2026"},
			ErrLevelNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sm.Academics().CreateEnrollment(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateEnrollment error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	two := 2
	one := 1
	if _, err := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "M1", Name: "Master 1", SortOrder: &two}); err != nil {
		t.Fatalf("CreateLevel: %v", err)
	}
	if _, err := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "L1", Name: "Licence 1", SortOrder: &one}); err != nil {
		t.Fatalf("CreateLevel: %v", err)
	}
	if _, err := sm.Academics().CreateLevel(ctx, &LevelCreateRequest{Code: "AUTRE", Name: "Sans ordre"}); err != nil {
		t.Fatalf("CreateLevel: %v", err)
	}

	levels, err := sm.Academics().ListLevels(ctx)
	if err != nil {
		t.Fatalf("ListLevels: %v", err)
	}
	got := make([]string, 0, len(levels))
	for _, l := range levels {
		got = append(got, l.Code)
	}
	want := []string{"L1", "M1", "AUTRE"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("level order = %v, want %v", got, want)
		}
	}
}
