// Package config loads pivotctl settings with viper and builds its logger.
package config
