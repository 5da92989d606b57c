package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"TUIDLE_LEXICON", "TUIDLE_COMMON", "TUIDLE_WORD_LENGTH", "TUIDLE_ORACLE", "TUIDLE_OPENER", "TUIDLE_MAX_GUESSES", "TUIDLE_PREFER_COMMON", "TUIDLE_EXPORT_LEXICON", "TUIDLE_DB", "TUIDLE_NO_HISTORY"} {
		t.Setenv(key, "")
	}
	color.NoColor = true
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseTurnArg(t *testing.T) {
	guess, pattern, err := parseTurnArg("AROSE:gybbb")
	require.NoError(t, err)
	require.Equal(t, "arose", guess)
	require.Equal(t, "gybbb", pattern.String())

	guess, _, err = parseTurnArg("crane=..!?.")
	require.NoError(t, err)
	require.Equal(t, "crane", guess)

	for _, bad := range []string{"arose", "arose:", ":gybbb", "arose:gyzbb"} {
		_, _, err := parseTurnArg(bad)
		require.Error(t, err, bad)
	}
}

func TestRenderTilesPlain(t *testing.T) {
	isolate(t)
	p, err := feedback.Parse("gyb")
	require.NoError(t, err)
	require.Equal(t, " C  A  T ", renderTiles("cat", p))
}

func TestPrintColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printColumns(&buf, []string{"alarm", "crane", "slate"}, 15))
	require.Equal(t, "alarm  crane\nslate\n", buf.String())
}

func TestValidateRunConfig(t *testing.T) {
	ok := model.RunConfig{WordLength: 5, MaxGuesses: 6, Oracle: "naive"}
	require.NoError(t, validateRunConfig(ok))

	bad := ok
	bad.Oracle = "entropy"
	require.Error(t, validateRunConfig(bad))

	bad = ok
	bad.Opener = "cat"
	require.Error(t, validateRunConfig(bad))

	bad = ok
	bad.WordLength = 0
	require.Error(t, validateRunConfig(bad))
}

func TestResolveSettingsPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "tuidle", "config.toml"),
		"[solver]\nlexicon = \"/file/lexicon.txt\"\noracle = \"standard\"\nmax-guesses = 8\nopener = \"slate\"\n")
	writeFile(t, filepath.Join(dir, "config", "tuidle", ".env"), "TUIDLE_ORACLE=naive\n")
	t.Setenv("TUIDLE_MAX_GUESSES", "7")

	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--opener", "crane"}))

	run, hist, err := resolveSettings(root)
	require.NoError(t, err)
	require.Equal(t, "/file/lexicon.txt", run.LexiconPath, "file value applies when nothing overrides it")
	require.Equal(t, "naive", run.Oracle, "dotenv overrides file")
	require.Equal(t, 7, run.MaxGuesses, "process env overrides file")
	require.Equal(t, "crane", run.Opener, "flag overrides everything")
	require.Empty(t, run.CommonPath, "missing default common list falls back to the lexicon")
	require.Equal(t, filepath.Join(dir, "data", "tuidle", "tuidle.db"), hist.path)
	require.False(t, hist.disabled)
}

func TestBuildStatsConfig(t *testing.T) {
	newRootCmd()
	statsSource = "bench"
	statsSince = "2026-01-02"
	statsLast = 3
	cfg, err := buildStatsConfig()
	require.NoError(t, err)
	require.Equal(t, "bench", cfg.Source)
	require.NotNil(t, cfg.Since)
	require.Equal(t, 3, cfg.Last)

	statsSource = "tournament"
	_, err = buildStatsConfig()
	require.Error(t, err)

	statsSource = ""
	statsSince = "yesterday"
	_, err = buildStatsConfig()
	require.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	dir := isolate(t)
	lexicon := filepath.Join(dir, "lexicon.txt")
	writeFile(t, lexicon, "alarm\narose\ncrane\nslate\nzebra\n")

	out, err := execute(t, "suggest", "--lexicon", lexicon, "--letters", "3", "arose:gybbb")
	require.NoError(t, err)
	require.Contains(t, out, "Remaining: 1 lexicon, 1 common")
	require.Contains(t, out, "Next guess: alarm")
	require.Contains(t, out, "Letter")

	_, err = execute(t, "suggest", "--lexicon", lexicon, "arose:gyb")
	require.Error(t, err)
}

func TestPlayAndStatsCommands(t *testing.T) {
	dir := isolate(t)
	lexicon := filepath.Join(dir, "lexicon.txt")
	writeFile(t, lexicon, "alarm\narose\ncrane\nslate\nzebra\n")

	out, err := execute(t, "play", "--lexicon", lexicon, "--secret", "zebra", "--max-guesses", "5")
	require.NoError(t, err)
	require.Contains(t, out, `Solved "zebra"`)

	out, err = execute(t, "bench", "--lexicon", lexicon, "--all", "--jobs", "2", "--oracle", "standard")
	require.NoError(t, err)
	require.Contains(t, out, "Games: 5")

	out, err = execute(t, "stats", "--source", "bench")
	require.NoError(t, err)
	require.Contains(t, out, "Games: 5")
	require.Contains(t, out, "Guess Distribution")

	out, err = execute(t, "stats", "--source", "play")
	require.NoError(t, err)
	require.Contains(t, out, "Games: 1")
}

func TestNoHistorySkipsDatabase(t *testing.T) {
	dir := isolate(t)
	lexicon := filepath.Join(dir, "lexicon.txt")
	writeFile(t, lexicon, "alarm\narose\ncrane\n")

	_, err := execute(t, "play", "--lexicon", lexicon, "--secret", "crane", "--no-history")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data", "tuidle", "tuidle.db"))
	require.True(t, os.IsNotExist(err), "database must not be created")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "tuidle 0.1.0"), out)
}

func TestMissingLexiconHint(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "suggest", "--lexicon", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "tuidle wordlist --word-length 5")
	require.ErrorIs(t, err, lexicon.ErrLoad)
}

func TestWordListLoadErrorKeepsChain(t *testing.T) {
	run := model.RunConfig{LexiconPath: "/lists/lexicon-6.txt", WordLength: 6}
	err := wordListLoadError(run, fmt.Errorf("%w: lexicon has no 6-letter words", lexicon.ErrLoad))
	require.ErrorIs(t, err, lexicon.ErrLoad)
	require.Contains(t, err.Error(), "expected lexicon at: /lists/lexicon-6.txt")

	other := errors.New("boom")
	require.Equal(t, other, wordListLoadError(run, other))
}

func TestExportLexiconHelpWarnsAboutDroppedEntries(t *testing.T) {
	flag := newRootCmd().PersistentFlags().Lookup("export-lexicon")
	require.NotNil(t, flag)
	require.Contains(t, flag.Usage, "co-op")
	require.Contains(t, flag.Usage, "duplicates")
}
