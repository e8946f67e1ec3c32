package config

import "os"

func IsDebug() bool {
	return os.Getenv("LADO_DEBUG") == "1"
}
