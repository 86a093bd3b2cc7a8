//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mp4tomp3/cmd"
	"mp4tomp3/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	config     *config.Config
	env        map[string]string
	output     *bytes.Buffer
	err        error
}

var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yaml")
		testCtx.config = nil
		testCtx.env = make(map[string]string)
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a config file with content:$`, testCtx.aConfigFileWithContent)
	ctx.Step(`^no config file exists$`, testCtx.noConfigFileExists)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, testCtx.theEnvironmentVariableIs)
	ctx.Step(`^the configuration is loaded$`, testCtx.theConfigurationIsLoaded)
	ctx.Step(`^the effective (\S+) should be "([^"]*)"$`, testCtx.theEffectiveSettingShouldBe)
	ctx.Step(`^I list the configuration$`, testCtx.iListTheConfiguration)
	ctx.Step(`^I set config "([^"]*)" to "([^"]*)"$`, testCtx.iSetConfigTo)
	ctx.Step(`^the config listing should contain "([^"]*)"$`, testCtx.theConfigListingShouldContain)
	ctx.Step(`^the saved (\S+) should be "([^"]*)"$`, testCtx.theSavedSettingShouldBe)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, testCtx.theConfigCommandShouldFailWith)
}

func (c *configContext) aConfigFileWithContent(content *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(content.Content), 0644)
}

func (c *configContext) noConfigFileExists() error {
	return nil
}

func (c *configContext) theEnvironmentVariableIs(name, value string) error {
	c.env[name] = value
	return nil
}

func (c *configContext) theConfigurationIsLoaded() error {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(func(name string) (string, bool) {
		value, ok := c.env[name]
		return value, ok
	})
	c.config = cfg
	return nil
}

func (c *configContext) loadedConfig() (*config.Config, error) {
	if c.config == nil {
		if err := c.theConfigurationIsLoaded(); err != nil {
			return nil, err
		}
	}
	return c.config, nil
}

func (c *configContext) theEffectiveSettingShouldBe(key, expected string) error {
	cfg, err := c.loadedConfig()
	if err != nil {
		return err
	}
	value, err := config.NewConfigManager(cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if value != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, value)
	}
	return nil
}

func (c *configContext) iListTheConfiguration() error {
	cfg, err := c.loadedConfig()
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigListWithDependencies(cfg, c.configPath, c.output)
	return c.err
}

func (c *configContext) iSetConfigTo(key, value string) error {
	// Set works from the file alone, as the CLI does
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigSetWithDependencies(cfg, c.configPath, key, value, c.output)
	return nil
}

func (c *configContext) theConfigListingShouldContain(expected string) error {
	if !strings.Contains(strings.Join(strings.Fields(c.output.String()), " "), expected) {
		return fmt.Errorf("expected listing to contain %q, got:\n%s", expected, c.output.String())
	}
	return nil
}

func (c *configContext) theSavedSettingShouldBe(key, expected string) error {
	if c.err != nil {
		return fmt.Errorf("config command failed: %w", c.err)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	value, err := config.NewConfigManager(cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if value != expected {
		return fmt.Errorf("expected saved %s %q, got %q", key, expected, value)
	}
	return nil
}

func (c *configContext) theConfigCommandShouldFailWith(expected string) error {
	if c.err == nil {
		return fmt.Errorf("expected config command to fail")
	}
	if !strings.Contains(c.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %v", expected, c.err)
	}
	return nil
}
