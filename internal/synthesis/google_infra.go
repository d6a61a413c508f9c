package synthesis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	googleTTSURL  = "https://translate.google.com/translate_tts"
	maxChunkRunes = 100
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var errNoText = errors.New("no text to speak")

// GoogleTTS uses the Google Translate speech endpoint. Long text is cut into
// chunks the endpoint accepts and the returned MP3 segments are concatenated.
type GoogleTTS struct {
	url     string
	httpCli *http.Client
}

func NewGoogleTTS() *GoogleTTS {
	return &GoogleTTS{
		url:     googleTTSURL,
		httpCli: &http.Client{},
	}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, errNoText
	}

	var buf bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, &buf, chunk, language, i, len(chunks)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, dst io.Writer, chunk, language string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", language)
	q.Set("q", chunk)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("google tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google tts error: status %d: %s", resp.StatusCode, string(b))
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("read google tts audio: %w", err)
	}
	return nil
}

// splitText breaks text on whitespace into chunks of at most max runes.
// Words longer than max are hard-split.
func splitText(text string, max int) []string {
	var (
		chunks []string
		cur    strings.Builder
		n      int
	)

	flush := func() {
		if n > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			n = 0
		}
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			flush()
			r := []rune(word)
			chunks = append(chunks, string(r[:max]))
			word = string(r[max:])
		}

		wn := utf8.RuneCountInString(word)
		if n > 0 && n+1+wn > max {
			flush()
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wn
	}
	flush()

	return chunks
}
