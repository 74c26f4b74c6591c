package inspire

import (
	"encoding/json"
	"fmt"
)

// searchResponse is the envelope of search endpoints.
type searchResponse struct {
	Hits *struct {
		Total int `json:"total"`
		Hits  []struct {
			Metadata json.RawMessage `json:"metadata"`
		} `json:"hits"`
	} `json:"hits"`
}

// singleResponse is the envelope of single-record endpoints such as
// /authors/{recid}.
type singleResponse struct {
	Metadata json.RawMessage `json:"metadata"`
}

// decodeHits returns the metadata objects of a response. Search responses
// carry them in hits.hits; single-record responses are treated as one hit,
// and a bare document is returned as is.
func decodeHits(body []byte) ([]json.RawMessage, error) {
	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if search.Hits != nil {
		out := make([]json.RawMessage, 0, len(search.Hits.Hits))
		for _, h := range search.Hits.Hits {
			if len(h.Metadata) > 0 {
				out = append(out, h.Metadata)
			}
		}
		return out, nil
	}

	var single singleResponse
	if err := json.Unmarshal(body, &single); err == nil && len(single.Metadata) > 0 {
		return []json.RawMessage{single.Metadata}, nil
	}
	return []json.RawMessage{json.RawMessage(body)}, nil
}
