package filestorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anuragc10/academiapro/internal/shared/infrastructure/config"
)

func TestNewModule_LocalAndS3Error(t *testing.T) {
	m, err := NewModule(context.Background(), config.FileStorageConfig{UseS3: false, LocalPath: t.TempDir()}, "http://localhost:5000")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotNil(t, m.Service())

	_, err = NewModule(context.Background(), config.FileStorageConfig{UseS3: true, S3BucketName: ""}, "http://localhost:5000")
	require.Error(t, err)
}
