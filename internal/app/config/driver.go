package config

import "time"

// DriverConfig holds connection settings for the backing services. Secrets
// come from the environment only.
type DriverConfig struct {
	MongoDB  MongoDB
	Redis    Redis
	Logger   Logger
	RabbitMQ RabbitMQ
	Minio    Minio
}

type MongoDB struct {
	// URI wins over Host/Port when set, e.g. a mongodb+srv Atlas string.
	URI            string
	Host           string
	Port           string
	Username       string
	Password       string
	DbName         string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

type Redis struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}

type RabbitMQ struct {
	Host      string
	Port      int
	Username  string
	Password  string
	VHost     string
	Heartbeat time.Duration
}

type Minio struct {
	Host     string
	Port     string
	Username string
	Password string
	UseSSL   bool
}
