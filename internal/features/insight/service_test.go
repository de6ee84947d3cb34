package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	textResp  string
	textErr   error
	imageResp string
	imageErr  error

	textPrompts  []string
	imagePrompts []string
	lastImage    []byte
}

func (f *fakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.textPrompts = append(f.textPrompts, prompt)
	return f.textResp, f.textErr
}

func (f *fakeClient) GenerateWithImage(_ context.Context, prompt string, image []byte, _ string) (string, error) {
	f.imagePrompts = append(f.imagePrompts, prompt)
	f.lastImage = image
	return f.imageResp, f.imageErr
}

type fakePalmStore struct {
	inserted []*PalmReading
	err      error
}

func (f *fakePalmStore) Insert(_ context.Context, reading *PalmReading) error {
	if f.err != nil {
		return f.err
	}
	reading.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, reading)
	return nil
}

func TestInterpretCard(t *testing.T) {
	client := &fakeClient{textResp: "  A day for quiet hope.  "}
	svc := NewService(client, &fakePalmStore{})

	text, err := svc.InterpretCard(context.Background(), "The Star", "upright", "hope, renewal")
	require.NoError(t, err)
	assert.Equal(t, "A day for quiet hope.", text)

	require.Len(t, client.textPrompts, 1)
	assert.Contains(t, client.textPrompts[0], "The Star")
	assert.Contains(t, client.textPrompts[0], "upright")
	assert.Contains(t, client.textPrompts[0], "hope, renewal")
}

func TestInterpretCard_ClientError(t *testing.T) {
	client := &fakeClient{textErr: errors.New("quota exceeded")}
	svc := NewService(client, &fakePalmStore{})

	_, err := svc.InterpretCard(context.Background(), "The Moon", "reversed", "confusion")
	assert.Error(t, err)
}

func TestReadPalm(t *testing.T) {
	client := &fakeClient{
		imageResp: "```json\n{\"life_line\": \"long and deep\", \"head_line\": \"straight\", " +
			"\"heart_line\": \"curved\", \"fate_line\": \"faint\", " +
			"\"overall_impression\": \"a steady hand\"}\n```",
		textResp: "Your hand speaks of steadiness.",
	}
	store := &fakePalmStore{}
	svc := NewService(client, store)

	image := []byte{0xff, 0xd8, 0xff}
	reading, err := svc.ReadPalm(context.Background(), 42, image, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, int64(42), reading.UserID)
	assert.Equal(t, "long and deep", reading.Features.LifeLine)
	assert.Equal(t, "a steady hand", reading.Features.OverallImpression)
	assert.Equal(t, "Your hand speaks of steadiness.", reading.Narrative)

	// Stage one got the photo, stage two got only the features.
	require.Len(t, client.imagePrompts, 1)
	assert.Equal(t, image, client.lastImage)
	require.Len(t, client.textPrompts, 1)
	assert.Contains(t, client.textPrompts[0], "long and deep")

	require.Len(t, store.inserted, 1)
	assert.Same(t, reading, store.inserted[0])
}

func TestReadPalm_NoJSONInStageOne(t *testing.T) {
	client := &fakeClient{imageResp: "I see a hand but cannot describe it."}
	svc := NewService(client, &fakePalmStore{})

	_, err := svc.ReadPalm(context.Background(), 42, []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, ErrPalmUnreadable)
	// Stage two must not run on a failed stage one.
	assert.Empty(t, client.textPrompts)
}

func TestReadPalm_MalformedJSON(t *testing.T) {
	client := &fakeClient{imageResp: `{"life_line": 12345, "head_line": {"bad": "shape"}}`}
	svc := NewService(client, &fakePalmStore{})

	_, err := svc.ReadPalm(context.Background(), 42, []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, ErrPalmUnreadable)
}

func TestReadPalm_StageTwoError(t *testing.T) {
	client := &fakeClient{
		imageResp: `{"life_line": "x", "head_line": "x", "heart_line": "x", "fate_line": "x", "overall_impression": "x"}`,
		textErr:   errors.New("model overloaded"),
	}
	store := &fakePalmStore{}
	svc := NewService(client, store)

	_, err := svc.ReadPalm(context.Background(), 42, []byte{1}, "image/jpeg")
	assert.Error(t, err)
	assert.Empty(t, store.inserted)
}

func TestReadPalm_StoreError(t *testing.T) {
	client := &fakeClient{
		imageResp: `{"life_line": "x", "head_line": "x", "heart_line": "x", "fate_line": "x", "overall_impression": "x"}`,
		textResp:  "narrative",
	}
	svc := NewService(client, &fakePalmStore{err: errors.New("db down")})

	_, err := svc.ReadPalm(context.Background(), 42, []byte{1}, "image/jpeg")
	assert.Error(t, err)
}
