package config

import (
	"reflect"
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "many")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_LIST", " https://a.example , ,https://b.example")

	if got := envInt("TEST_INT", 1); got != 42 {
		t.Errorf("envInt() = %d, want 42", got)
	}
	if got := envInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("envInt() invalid = %d, want default 7", got)
	}
	if got := envInt("TEST_UNSET_INT", 3); got != 3 {
		t.Errorf("envInt() unset = %d, want 3", got)
	}
	if got := envDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("envDuration() = %v, want 90s", got)
	}
	if got := envBool("TEST_BOOL", true); got {
		t.Error("envBool() = true, want false")
	}
	if got := envString("TEST_UNSET_STRING", "fallback"); got != "fallback" {
		t.Errorf("envString() = %q, want fallback", got)
	}

	want := []string{"https://a.example", "https://b.example"}
	if got := envList("TEST_LIST", nil); !reflect.DeepEqual(got, want) {
		t.Errorf("envList() = %v, want %v", got, want)
	}
	if got := envList("TEST_UNSET_LIST", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("envList() unset = %v, want [*]", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.UploadProvider != UploadProviderCloudinary {
		t.Errorf("UploadProvider = %q, want cloudinary", cfg.UploadProvider)
	}
	if cfg.UploadRootFolder != "memento" {
		t.Errorf("UploadRootFolder = %q, want memento", cfg.UploadRootFolder)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Errorf("environment flags wrong for %q", cfg.AppEnv)
	}
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECTION", "postgres://localhost/memento")

	driver, connection := LoadDatabase()
	if driver != "pgx" || connection != "postgres://localhost/memento" {
		t.Errorf("LoadDatabase() = %q, %q", driver, connection)
	}
}

func TestMissingUploadSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "cloudinary complete",
			cfg:  Config{UploadProvider: UploadProviderCloudinary, CloudinaryCloudName: "demo", CloudinaryAPIKey: "key", CloudinaryAPISecret: "secret"},
			want: nil,
		},
		{
			name: "cloudinary missing secret",
			cfg:  Config{UploadProvider: UploadProviderCloudinary, CloudinaryCloudName: "demo", CloudinaryAPIKey: "key"},
			want: []string{"CLOUDINARY_API_SECRET"},
		},
		{
			name: "s3 missing everything",
			cfg:  Config{UploadProvider: UploadProviderS3},
			want: []string{"S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY"},
		},
		{
			name: "unknown provider",
			cfg:  Config{UploadProvider: "ftp"},
			want: []string{"UPLOAD_PROVIDER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.MissingUploadSettings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingUploadSettings() = %v, want %v", got, tt.want)
			}
		})
	}
}
