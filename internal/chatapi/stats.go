package chatapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Stats is the analysis payload returned by the chat endpoint.
// Only Mood, EnergyScore and Summary are interpreted; everything else the
// server sends is kept in Extra and written back out unchanged.
type Stats struct {
	Mood        string
	EnergyScore float64
	Summary     string

	// Extra holds server-defined fields other than mood, energy_score and summary.
	Extra map[string]json.RawMessage
}

const (
	fieldMood        = "mood"
	fieldEnergyScore = "energy_score"
	fieldSummary     = "summary"
)

// UnmarshalJSON decodes a stats object, collecting unknown fields into Extra.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Stats{}
	for k, v := range raw {
		switch k {
		case fieldMood:
			if err := json.Unmarshal(v, &s.Mood); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
		case fieldSummary:
			if err := json.Unmarshal(v, &s.Summary); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
		case fieldEnergyScore:
			score, err := decodeScore(v)
			if err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			s.EnergyScore = score
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			s.Extra[k] = v
		}
	}
	return nil
}

// MarshalJSON encodes the stats with Extra fields merged back in.
func (s Stats) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		out[k] = v
	}
	out[fieldMood] = s.Mood
	out[fieldEnergyScore] = s.EnergyScore
	out[fieldSummary] = s.Summary
	return json.Marshal(out)
}

// decodeScore accepts a JSON number or a numeric string. Models behind the
// endpoint occasionally quote the score.
func decodeScore(v json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n, nil
	}
	var str string
	if err := json.Unmarshal(v, &str); err != nil {
		return 0, fmt.Errorf("not a number: %s", string(v))
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", str)
	}
	return n, nil
}

// FormatEnergy renders an energy score the way the UI shows it, e.g. "9/10".
func FormatEnergy(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "/10"
}
