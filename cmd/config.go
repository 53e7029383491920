package cmd

import "time"

// Warehouse origin all quoted distances are measured from.
const (
	OriginLatitude  = 55.683037
	OriginLongitude = 37.661695
)

// DefaultGeocoderTimeout bounds one address lookup end to end.
const DefaultGeocoderTimeout = 10 * time.Second

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	TelegramBotToken  string
	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	OriginLatitude    float64
	OriginLongitude   float64
}
