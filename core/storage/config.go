package storage

// Driver names for the artifact store.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config holds configuration for the artifact store.
type Config struct {
	// Driver selects the store implementation (local, s3).
	Driver string `mapstructure:"driver" default:"local"`
	// Root is the base directory for the local driver.
	Root string `mapstructure:"root" default:"./images"`
	// Endpoint is the URL of the S3-compatible service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding the artifacts.
	Bucket string `mapstructure:"bucket" default:"cards"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverLocal, DriverS3:
		return true
	default:
		return false
	}
}
