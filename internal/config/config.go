package config

import (
	"fmt"
	"time"
)

const (
	BackendGoogle = "google"
	BackendLambda = "lambda"
	BackendVertex = "vertex"
	BackendGemini = "gemini"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Detection     DetectionConfig     `yaml:"detection"`
	Translation   TranslationConfig   `yaml:"translation"`
	Summarization SummarizationConfig `yaml:"summarization"`
	Logging       LoggingConfig       `yaml:"logging"`

	// Credentials are never read from the file, only from the environment.
	Credentials CredentialsConfig `yaml:"-"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type PipelineConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	SummaryMinChars int           `yaml:"summary_min_chars"`
}

type DetectionConfig struct {
	Backend  string `yaml:"backend"`
	Endpoint string `yaml:"endpoint"`
}

type TranslationConfig struct {
	Backend        string `yaml:"backend"`
	Endpoint       string `yaml:"endpoint"`
	LambdaFunction string `yaml:"lambda_function"`
	Region         string `yaml:"region"`
}

type SummarizationConfig struct {
	Backend     string `yaml:"backend"`
	Endpoint    string `yaml:"endpoint"`
	Region      string `yaml:"region"`
	Model       string `yaml:"model"`
	GeminiModel string `yaml:"gemini_model"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CredentialsConfig struct {
	APIKey      string
	ProjectID   string
	AccessToken string
	GeminiKeys  []string
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 30 * time.Minute
	}
	if c.Pipeline.Timeout == 0 {
		c.Pipeline.Timeout = 15 * time.Second
	}
	if c.Pipeline.SummaryMinChars == 0 {
		c.Pipeline.SummaryMinChars = 150
	}
	if c.Detection.Backend == "" {
		c.Detection.Backend = BackendGoogle
	}
	if c.Detection.Endpoint == "" {
		c.Detection.Endpoint = "https://translation.googleapis.com/language/translate/v2/detect"
	}
	if c.Translation.Backend == "" {
		c.Translation.Backend = BackendGoogle
	}
	if c.Translation.Endpoint == "" {
		c.Translation.Endpoint = "https://translation.googleapis.com/language/translate/v2"
	}
	if c.Summarization.Backend == "" {
		c.Summarization.Backend = BackendVertex
	}
	if c.Summarization.Region == "" {
		c.Summarization.Region = "us-central1"
	}
	if c.Summarization.Model == "" {
		c.Summarization.Model = "text-bison"
	}
	if c.Summarization.GeminiModel == "" {
		c.Summarization.GeminiModel = "gemini-2.5-flash"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Pipeline.Timeout < 0 {
		return fmt.Errorf("pipeline.timeout must be positive")
	}

	if c.Detection.Backend != BackendGoogle {
		return fmt.Errorf("detection.backend %q is not supported", c.Detection.Backend)
	}
	if c.Credentials.APIKey == "" {
		return fmt.Errorf("%s is required for detection", EnvAPIKey)
	}

	switch c.Translation.Backend {
	case BackendGoogle:
	case BackendLambda:
		if c.Translation.LambdaFunction == "" {
			return fmt.Errorf("translation.lambda_function is required for the lambda backend")
		}
	default:
		return fmt.Errorf("translation.backend %q is not supported", c.Translation.Backend)
	}

	switch c.Summarization.Backend {
	case BackendVertex:
		if c.Credentials.ProjectID == "" {
			return fmt.Errorf("%s is required for the vertex backend", EnvProjectID)
		}
		if c.Credentials.AccessToken == "" {
			return fmt.Errorf("%s is required for the vertex backend", EnvAccessToken)
		}
	case BackendGemini:
		if len(c.Credentials.GeminiKeys) == 0 {
			return fmt.Errorf("%s is required for the gemini backend", EnvGeminiKeys)
		}
	default:
		return fmt.Errorf("summarization.backend %q is not supported", c.Summarization.Backend)
	}

	return nil
}
