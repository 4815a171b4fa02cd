package imgflip

import (
	"context"
	"encoding/json"
	"fmt"

	"memeverse/domain"
)

const getMemesPath = "/get_memes"

// catalogService implements app.CatalogService using the Imgflip API.
type catalogService struct {
	client *Client
}

// NewCatalogService creates a CatalogService backed by Imgflip.
func NewCatalogService(client *Client) *catalogService {
	return &catalogService{client: client}
}

// memesEnvelope is Imgflip's response wrapper. The API signals failure
// both via non-2xx codes and via success=false with a 200; callers treat
// the two identically.
type memesEnvelope struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message"`
	Data         struct {
		Memes []apiMeme `json:"memes"`
	} `json:"data"`
}

// apiMeme is the subset of Imgflip's meme entity we care about.
type apiMeme struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *catalogService) Memes(ctx context.Context) ([]domain.Meme, error) {
	data, err := s.client.Get(ctx, getMemesPath)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	var env memesEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if !env.Success {
		msg := env.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("catalog API: %s", msg)
	}

	memes := make([]domain.Meme, 0, len(env.Data.Memes))
	for _, m := range env.Data.Memes {
		memes = append(memes, domain.Meme{
			ID:     m.ID,
			Name:   m.Name,
			URL:    m.URL,
			Width:  m.Width,
			Height: m.Height,
		})
	}

	return memes, nil
}
