package config

import "testing"

func validArgs() []string {
	return []string{
		"scene.obj", "env.pfm", "lens.txt", "out.pfm",
		"256", "8", "30",
		"640", "480",
		"0", "1", "3",
		"0", "0", "0",
		"40",
		"2.0", "35.0", "1.0",
	}
}

func TestParseValidArgs(t *testing.T) {
	cfg, err := Parse(validArgs())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.OBJPath != "scene.obj" {
		t.Errorf("OBJPath = %q, want scene.obj", cfg.OBJPath)
	}
	if cfg.SamplesPerPixel != 256 {
		t.Errorf("SamplesPerPixel = %d, want 256", cfg.SamplesPerPixel)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("dims = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if cfg.Eye.Z != 3 {
		t.Errorf("Eye.Z = %f, want 3", cfg.Eye.Z)
	}
	if !cfg.HasEnvMap() {
		t.Error("HasEnvMap() should be true when pos 2 is non-empty")
	}
	if !cfg.HasLens() {
		t.Error("HasLens() should be true when pos 3 is non-empty")
	}
}

func TestParseEmptyEnvAndLensMeansPinholeNoEnv(t *testing.T) {
	args := validArgs()
	args[1] = ""
	args[2] = ""
	cfg, err := Parse(args)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HasEnvMap() {
		t.Error("HasEnvMap() should be false for an empty pos-2 argument")
	}
	if cfg.HasLens() {
		t.Error("HasLens() should be false for an empty pos-3 argument")
	}
}

func TestParseWrongArgCount(t *testing.T) {
	if _, err := Parse(validArgs()[:10]); err == nil {
		t.Error("expected an error for too few arguments")
	}
}

func TestParseMalformedInteger(t *testing.T) {
	args := validArgs()
	args[4] = "not-a-number"
	if _, err := Parse(args); err == nil {
		t.Error("expected an error for a malformed samples-per-pixel argument")
	}
}

func TestParseMalformedFloat(t *testing.T) {
	args := validArgs()
	args[9] = "nope"
	if _, err := Parse(args); err == nil {
		t.Error("expected an error for a malformed eye-x argument")
	}
}
