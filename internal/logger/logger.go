package logger

import "go.uber.org/zap"

// Init installs the global zap logger. Production deployments get JSON
// output with sampling; anything else gets the human-readable development
// logger.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}
