package services

import (
	"context"
	"testing"
)

func TestModuleCoefficientValidation(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	// Zero is a legitimate weight; negative is not.
	zero := 0.0
	if _, err := sm.Modules().Create(ctx, &ModuleCreateRequest{
		Code:        "OPT001",
		Name:        "Option",
		Coefficient: &zero,
	}); err != nil {
		t.Errorf("coefficient 0 rejected: %v", err)
	}

	negative := -1.0
	if _, err := sm.Modules().Create(ctx, &ModuleCreateRequest{
		Code:        "OPT002",
		Name:        "Option",
		Coefficient: &negative,
	}); err == nil {
		t.Error("negative coefficient accepted")
	}

	if _, err := sm.Modules().Create(ctx, &ModuleCreateRequest{
		Code: "OPT003",
		Name: "Option",
	}); err == nil {
		t.Error("missing coefficient accepted")
	}
}

func TestModuleSeed(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	track, err := sm.Academics().CreateTrack(ctx, &TrackCreateRequest{Code: "INFO", Name: "Informatique"})
	if err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	info := "INFO"
	entries := []ModuleSeed{
		{Code: "MATH101", Name: "Analyse", Coefficient: 3, TrackCode: &info},
		{Code: "PHYS101", Name: "Mécanique", Coefficient: 2},
		{Code: "MATH101", Name: "Doublon", Coefficient: 1},
	}
	report, err := sm.Modules().Seed(ctx, entries)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Errorf("report = %+v, want 2 imported, 1 skipped", report)
	}

	modules, err := sm.Modules().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(modules))
	}
	for _, m := range modules {
		if m.Code == "MATH101" {
			if m.TrackID == nil || *m.TrackID != track.ID {
				t.Errorf("MATH101 track id = %v, want %d", m.TrackID, track.ID)
			}
		}
	}
}
