package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubObjectAPI struct {
	headErr error
	putErr  error
	putKey  string
	putBody []byte
}

func (s *stubObjectAPI) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if s.headErr != nil {
		return nil, s.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (s *stubObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	s.putKey = *in.Key
	s.putBody, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

type stubPresignAPI struct {
	url string
	err error
	key string
}

func (s *stubPresignAPI) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.key = *in.Key
	return &v4.PresignedHTTPRequest{URL: s.url}, nil
}

func TestResolveURLPresent(t *testing.T) {
	presign := &stubPresignAPI{url: "https://bucket.example/signed"}
	store := &AssetStore{bucket: "pygus-storage", client: &stubObjectAPI{}, presign: presign}

	url := store.ResolveURL(context.Background(), ImagePrefix, "CAFE.png")
	assert.Equal(t, "https://bucket.example/signed", url)
	assert.Equal(t, "tasks_images/CAFE.png", presign.key)
}

func TestResolveURLAbsent(t *testing.T) {
	store := &AssetStore{
		bucket:  "pygus-storage",
		client:  &stubObjectAPI{headErr: &types.NotFound{}},
		presign: &stubPresignAPI{url: "https://should-not-be-used"},
	}
	// A missing object is an expected state, not an error.
	assert.Equal(t, "", store.ResolveURL(context.Background(), WordAudioPrefix, "CAFE.mp3"))
}

func TestResolveURLTransportError(t *testing.T) {
	store := &AssetStore{
		bucket:  "pygus-storage",
		client:  &stubObjectAPI{headErr: errors.New("connection refused")},
		presign: &stubPresignAPI{url: "https://should-not-be-used"},
	}
	assert.Equal(t, "", store.ResolveURL(context.Background(), ImagePrefix, "CAFE.png"))
}

func TestResolveURLPresignError(t *testing.T) {
	store := &AssetStore{
		bucket:  "pygus-storage",
		client:  &stubObjectAPI{},
		presign: &stubPresignAPI{err: errors.New("signer broken")},
	}
	assert.Equal(t, "", store.ResolveURL(context.Background(), ImagePrefix, "CAFE.png"))
}

func TestUpload(t *testing.T) {
	api := &stubObjectAPI{}
	store := &AssetStore{bucket: "pygus-storage", client: api, presign: &stubPresignAPI{}}

	err := store.Upload(context.Background(), SyllableAudioPrefix+"/CAFE", "CA.mp3",
		bytes.NewReader([]byte("audio-bytes")), "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "tasks_audios/CAFE/CA.mp3", api.putKey)
	assert.Equal(t, []byte("audio-bytes"), api.putBody)
}
