package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/tuidle/internal/wordlist"
)

const dataDir = "wordfreq/data/"

// ErrNoWords reports an extraction that produced nothing.
var ErrNoWords = errors.New("no words extracted")

// ExtractOptions selects the words taken from a wheel.
type ExtractOptions struct {
	Lang   string
	Length int
	Limit  int
}

// cbHeader is the first element of a cBpack file. Each following element is a
// bin holding the words whose frequency rounds to minus bin-index centibels.
type cbHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

// ExtractWords returns up to opts.Limit normalized words of exactly opts.Length
// letters, most frequent first. The large list is used when the wheel has one.
func ExtractWords(wheelPath string, opts ExtractOptions) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	if opts.Length <= 0 {
		return nil, fmt.Errorf("word length must be greater than 0")
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	lang := strings.ToLower(opts.Lang)

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := selectDataFile(reader.File, lang)
	if file == nil {
		return nil, fmt.Errorf("no data file found for %q", lang)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var data io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		data = gz
	}

	keep := wordlist.All(wordlist.FilterForLang(lang), wordlist.ByLength(opts.Length))
	words, err := decodeBins(data, keep, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w for %s with %d letters", ErrNoWords, lang, opts.Length)
	}
	return words, nil
}

// decodeBins streams the cBpack array and stops once limit words are kept.
func decodeBins(r io.Reader, keep wordlist.FilterFunc, limit int) ([]string, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("missing header")
	}
	var header cbHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("bad header: %w", err)
	}
	if header.Format != "cB" {
		return nil, fmt.Errorf("unsupported format %q", header.Format)
	}

	seen := map[string]struct{}{}
	words := make([]string, 0, limit)
	for i := 1; i < n && len(words) < limit; i++ {
		var bin []string
		if err := dec.Decode(&bin); err != nil {
			return nil, fmt.Errorf("bin %d: %w", i, err)
		}
		for _, raw := range bin {
			word := wordlist.Normalize(raw)
			if !keep(word) {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) == limit {
				break
			}
		}
	}
	return words, nil
}

func selectDataFile(files []*zip.File, lang string) *zip.File {
	var small *zip.File
	for _, f := range files {
		l, size := parseDataFile(f.Name)
		if l != lang {
			continue
		}
		switch size {
		case "large":
			return f
		case "small":
			small = f
		}
	}
	return small
}

// parseDataFile splits "wordfreq/data/large_en.msgpack.gz" into ("en", "large").
func parseDataFile(name string) (lang, size string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataDir) {
		return "", ""
	}
	base := path.Base(name)
	base = strings.TrimSuffix(base, ".gz")
	if !strings.HasSuffix(base, ".msgpack") {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".msgpack")
	size, lang, ok := strings.Cut(base, "_")
	if !ok || (size != "large" && size != "small") || lang == "" {
		return "", ""
	}
	return lang, size
}

// ListLanguages returns the sorted language codes that have word data.
func ListLanguages(wheelPath string) ([]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	set := map[string]struct{}{}
	for _, f := range reader.File {
		if lang, _ := parseDataFile(f.Name); lang != "" {
			set[lang] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
