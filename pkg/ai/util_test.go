package ai

import (
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  payload
	}{
		{
			name:  "plain json",
			input: `{"name":"maria","count":3}`,
			want:  payload{Name: "maria", Count: 3},
		},
		{
			name:  "double encoded",
			input: `"{\"name\":\"maria\",\"count\":3}"`,
			want:  payload{Name: "maria", Count: 3},
		},
		{
			name:  "duplicate leading brace",
			input: `{{"name":"maria","count":3}`,
			want:  payload{Name: "maria", Count: 3},
		},
		{
			name:  "trailing comma repaired",
			input: `{"name":"maria","count":3,}`,
			want:  payload{Name: "maria", Count: 3},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"name\":\"maria\",\"count\":3}  \n",
			want:  payload{Name: "maria", Count: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payload{}
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalFlexibleUnrepairable(t *testing.T) {
	got := payload{}
	if err := UnmarshalFlexible("not json at all %%", &got); err == nil {
		t.Error("UnmarshalFlexible() succeeded on garbage input")
	}
}
