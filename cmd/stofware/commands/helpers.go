package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
	"github.com/stofloos/stofware-client-go/pkg/swclient"
)

// Output format constants.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// CreateClient builds a client from the effective configuration (flags,
// environment, config file).
func CreateClient() (stofware.Client, error) {
	config := &stofware.Config{
		BaseURL: viper.GetString("api"),
		Token:   viper.GetString("token"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = newZerologAdapter()
	}

	client, err := swclient.New(config)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// zerologAdapter adapts zerolog to the stofware.Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter() *zerologAdapter {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	return &zerologAdapter{
		logger: zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel),
	}
}

func (l *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
