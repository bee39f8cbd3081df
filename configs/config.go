package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	TwitterConsumerKey       string
	TwitterConsumerSecret    string
	TwitterAccessTokenKey    string
	TwitterAccessTokenSecret string
	TwitterProfile           string
	PostgresURI              string
	DatabaseName             string
	RedisURI                 string
	SocialAccountsFile       string
	JarbasURL                string
	ChamberDocumentsURL      string
	SuspicionsBucket         string
	SuspicionsKey            string
	R2                       R2
	AdminAPIKey              string
	ServerAddr               string
}

func LoadConfig() *Config {
	return &Config{
		TwitterConsumerKey:       getEnv("TWITTER_CONSUMER_KEY", ""),
		TwitterConsumerSecret:    getEnv("TWITTER_CONSUMER_SECRET", ""),
		TwitterAccessTokenKey:    getEnv("TWITTER_ACCESS_TOKEN_KEY", ""),
		TwitterAccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		TwitterProfile:           getEnv("TWITTER_PROFILE", "RosieDaSerenata"),
		PostgresURI:              getEnv("POSTGRES_URI", ""),
		DatabaseName:             getEnv("DATABASE_NAME", "whistleblower"),
		RedisURI:                 getEnv("REDIS_URI", ""),
		SocialAccountsFile:       getEnv("SOCIAL_ACCOUNTS_FILE", "data/social-accounts.csv"),
		JarbasURL:                getEnv("JARBAS_URL", "https://jarbas.serenata.ai/layers"),
		ChamberDocumentsURL:      getEnv("CHAMBER_DOCUMENTS_URL", "http://www.camara.gov.br/cota-parlamentar/documentos/publ"),
		SuspicionsBucket:         getEnv("SUSPICIONS_BUCKET", ""),
		SuspicionsKey:            getEnv("SUSPICIONS_KEY", "suspicions.csv"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
