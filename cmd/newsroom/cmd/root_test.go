package cmd

import (
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestEnvOverridesBindThroughViper(t *testing.T) {
	resetViper(t)
	t.Setenv("NEWSROOM_OUT", "weekly")
	t.Setenv("NEWSROOM_RUN_ID", "env-run")

	initConfig()
	if err := viper.BindPFlags(buildCmd.Flags()); err != nil {
		t.Fatal(err)
	}

	if got := viper.GetString("out"); got != "weekly" {
		t.Errorf("out = %q, want value from NEWSROOM_OUT", got)
	}
	if got := viper.GetString("run-id"); got != "env-run" {
		t.Errorf("run-id = %q, want value from NEWSROOM_RUN_ID", got)
	}
}

func TestFlagsTakePrecedenceOverEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("NEWSROOM_SOURCE", "live")

	initConfig()
	if err := viper.BindPFlags(buildCmd.Flags()); err != nil {
		t.Fatal(err)
	}
	if err := buildCmd.Flags().Set("source", "mock"); err != nil {
		t.Fatal(err)
	}

	if got := viper.GetString("source"); got != "mock" {
		t.Errorf("source = %q, want the flag to win over the environment", got)
	}
}

func TestSetupCommandResolvesConfigFromEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("NEWSROOM_CONFIG", "custom.yaml")
	t.Cleanup(func() { configFile = "" })

	initConfig()
	if err := setupCommand(nil, nil); err != nil {
		t.Fatal(err)
	}

	if configFile != "custom.yaml" {
		t.Errorf("configFile = %q, want value from NEWSROOM_CONFIG", configFile)
	}
}
