package advisorchat

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// tokenCounter estimates prompt sizes for the history budget. The encoding is
// loaded once; if it cannot be loaded the counter falls back to a bytes/4
// heuristic so chat keeps working offline.
type tokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

func (c *tokenCounter) Count(text string) int {
	c.once.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			c.enc = enc
		}
	})
	if c.enc != nil {
		return len(c.enc.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}
