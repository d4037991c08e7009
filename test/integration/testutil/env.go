package testutil

import (
	"fmt"
	"os"
	"testing"
)

type TestEnv struct {
	MongoURI       string
	DatabaseName   string
	AudiovisualURL string
	MarketingURL   string
	CerimonialURL  string
	DashboardURL   string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:       getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName:   getEnv("TEST_DB_NAME", DefaultDatabaseName),
		AudiovisualURL: serviceURL("TEST_AUDIOVISUAL_URL", "8081"),
		MarketingURL:   serviceURL("TEST_MARKETING_URL", "8082"),
		CerimonialURL:  serviceURL("TEST_CERIMONIAL_URL", "8083"),
		DashboardURL:   serviceURL("TEST_DASHBOARD_URL", "8084"),
	}
}

// Setup connects to Mongo, wipes the test database, and waits for the
// service behind baseURL to answer its health check.
func (e *TestEnv) Setup(t *testing.T, baseURL string) (*MongoHelper, *Client) {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	client := NewClient(baseURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	return mongo, client
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func serviceURL(key, defaultPort string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fmt.Sprintf("http://localhost:%s", defaultPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const (
	DefaultHealthCheckTimeout = 30 * ConnectionTimeout
)
