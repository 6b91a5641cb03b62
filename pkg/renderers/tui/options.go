package tui

type config struct {
	driver   PromptDriver
	pageSize int
}

// Option configures the TUI components.
type Option func(*config)

// WithPromptDriver overrides the prompt driver. Tests use scripted drivers;
// the default is a survey-backed terminal driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *config) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithPageSize caps the number of visible rows in select prompts.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func newConfig(options []Option) (*config, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		cfg.driver = driver
	}
	return cfg, nil
}
