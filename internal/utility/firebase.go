package utility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var firebaseAuth *auth.Client

// findAppDir tìm thư mục gốc của ứng dụng (thư mục chứa config/env)
func findAppDir() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return currentDir, nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("không tìm thấy thư mục chứa config/env")
		}
		currentDir = parentDir
	}
}

// ResolveCredentialsPath trả về đường dẫn tuyệt đối tới file service account.
// Đường dẫn tương đối được resolve từ thư mục gốc của ứng dụng.
func ResolveCredentialsPath(credentialsPath string) (string, error) {
	if credentialsPath == "" {
		return "", fmt.Errorf("firebase credentials path is empty")
	}
	if !filepath.IsAbs(credentialsPath) {
		appDir, err := findAppDir()
		if err != nil {
			return "", err
		}
		credentialsPath = filepath.Join(appDir, credentialsPath)
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return "", fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}
	return credentialsPath, nil
}

// InitFirebase khởi tạo Firebase Admin SDK và Auth client
func InitFirebase(projectID, credentialsPath string) error {
	path, err := ResolveCredentialsPath(credentialsPath)
	if err != nil {
		return err
	}

	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: projectID,
	}, option.WithCredentialsFile(path))
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	firebaseAuth = authClient
	return nil
}

// GetFirebaseAuth trả về Firebase Auth client (nil nếu chưa khởi tạo)
func GetFirebaseAuth() *auth.Client {
	return firebaseAuth
}
