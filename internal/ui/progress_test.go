package ui

import (
	"testing"

	"flint/internal/buildpipeline"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		stage  buildpipeline.Stage
		status buildpipeline.Status
		want   string
	}{
		{buildpipeline.StageDecode, buildpipeline.StatusQueued, "queued"},
		{buildpipeline.StageDecode, buildpipeline.StatusWorking, "decoding"},
		{buildpipeline.StageValidate, buildpipeline.StatusWorking, "validating"},
		{buildpipeline.StageEmit, buildpipeline.StatusWorking, "emitting"},
		{buildpipeline.StageBuild, buildpipeline.StatusWorking, "building"},
		{buildpipeline.StageLink, buildpipeline.StatusWorking, "building"},
		{buildpipeline.StageEmit, buildpipeline.StatusDone, "done"},
		{buildpipeline.StageLink, buildpipeline.StatusError, "error"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.stage, tc.status); got != tc.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tc.stage, tc.status, got, tc.want)
		}
	}
}

func TestApplyEventUpdatesItems(t *testing.T) {
	events := make(chan buildpipeline.Event)
	model := NewProgressModel("build demo", []string{"a.fir", "b.fir"}, events).(*progressModel)

	model.applyEvent(buildpipeline.Event{
		File:   "a.fir",
		Stage:  buildpipeline.StageEmit,
		Status: buildpipeline.StatusWorking,
	})
	if model.items[0].status != "emitting" {
		t.Errorf("item status = %q, want emitting", model.items[0].status)
	}
	if model.items[1].status != "queued" {
		t.Errorf("untouched item status = %q, want queued", model.items[1].status)
	}

	model.applyEvent(buildpipeline.Event{
		Stage:  buildpipeline.StageLink,
		Status: buildpipeline.StatusWorking,
	})
	if model.stageLabel != "building" {
		t.Errorf("stage label = %q, want building", model.stageLabel)
	}

	model.applyEvent(buildpipeline.Event{
		File:   "unknown.fir",
		Stage:  buildpipeline.StageEmit,
		Status: buildpipeline.StatusDone,
	})
	for _, item := range model.items {
		if item.path == "unknown.fir" {
			t.Error("unknown file grew a row")
		}
	}
}

func TestProgressFromStage(t *testing.T) {
	prev := 0.0
	for _, stage := range []buildpipeline.Stage{
		buildpipeline.StageDecode,
		buildpipeline.StageValidate,
		buildpipeline.StageEmit,
		buildpipeline.StageBuild,
		buildpipeline.StageLink,
	} {
		got := progressFromStage(stage)
		if got <= prev || got >= 1.0 {
			t.Errorf("progressFromStage(%s) = %v, want monotonic in (0,1)", stage, got)
		}
		prev = got
	}
	if got := progressFromStage(buildpipeline.Stage("nope")); got != 0 {
		t.Errorf("unknown stage progress = %v, want 0", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a/very/long/module/path.fir", 10); got != "a/ve..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate tiny = %q", got)
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("truncate zero width = %q", got)
	}
}
