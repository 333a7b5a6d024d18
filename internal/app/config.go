package app

import (
	"time"

	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/utils"
)

type Config struct {
	Port           string
	Environment    string
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	// Object storage selection: "local" (default) or "gcs".
	StorageMode   string
	UploadsDir    string
	PublicBaseURL string
	GCSBucket     string
	CDNDomain     string

	GeocoderBaseURL string
	GeocoderAPIKey  string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	storageMode := utils.GetEnv("STORAGE_MODE", "local", log)
	uploadsDir := utils.GetEnv("UPLOADS_DIR", "uploads/images", log)
	publicBaseURL := utils.GetEnv("PUBLIC_BASE_URL", "http://localhost:"+port, log)
	gcsBucket := utils.GetEnv("GCS_BUCKET_NAME", "", log)
	cdnDomain := utils.GetEnv("CDN_DOMAIN", "", log)
	geocoderBaseURL := utils.GetEnv("GEOCODER_BASE_URL", "https://maps.googleapis.com", log)
	geocoderAPIKey := utils.GetEnv("GEOCODER_API_KEY", "", log)
	return Config{
		Port:            port,
		Environment:     environment,
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		StorageMode:     storageMode,
		UploadsDir:      uploadsDir,
		PublicBaseURL:   publicBaseURL,
		GCSBucket:       gcsBucket,
		CDNDomain:       cdnDomain,
		GeocoderBaseURL: geocoderBaseURL,
		GeocoderAPIKey:  geocoderAPIKey,
	}
}
