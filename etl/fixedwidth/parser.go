package fixedwidth

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

// filenameRE matches the expected NOMBRE_YYYYMMDD.txt convention.
var filenameRE = regexp.MustCompile(`(?i)^([A-Za-z0-9ÁÉÍÓÚÑáéíóúñ._-]+)_(\d{8})\.txt$`)

// dateRE finds the first 8-digit run anywhere in a name.
var dateRE = regexp.MustCompile(`\d{8}`)

// nonWordRE collapses anything outside the allowed filename alphabet.
var nonWordRE = regexp.MustCompile(`[^A-Za-z0-9ÁÉÍÓÚÑáéíóúñ]+`)

// Parser streams a fixed-width file and yields one column slice per
// non-blank line, in file order.
type Parser struct {
	r        io.Reader
	splitter *Splitter
	yyyymmdd string
}

// ParserOption configures a Parser.
type ParserOption func(*parserConfig)

type parserConfig struct {
	override     string
	splitterOpts []SplitterOption
}

// WithDateOverride supplies the ingestion date explicitly instead of
// deriving it from the filename.
func WithDateOverride(yyyymmdd string) ParserOption {
	return func(c *parserConfig) { c.override = yyyymmdd }
}

// WithSplitterOptions forwards options (e.g. WithStrictLength) to the
// underlying splitter.
func WithSplitterOptions(opts ...SplitterOption) ParserOption {
	return func(c *parserConfig) { c.splitterOpts = append(c.splitterOpts, opts...) }
}

// NewParser builds a parser over r. The ingestion date comes from the
// override when given, otherwise from the first 8-digit run in name; with
// neither, processing aborts before any row is read.
func NewParser(r io.Reader, name string, opts ...ParserOption) (*Parser, error) {
	var cfg parserConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	date := cfg.override
	if date != "" && !isYYYYMMDD(date) {
		return nil, ErrBadDate().WithDetail("fecha", date)
	}
	if date == "" {
		date = dateRE.FindString(name)
		if date == "" {
			return nil, ErrMissingDate().WithDetail("filename", name)
		}
	}

	return &Parser{
		r:        r,
		splitter: NewSplitter(DefaultLayout(), cfg.splitterOpts...),
		yyyymmdd: date,
	}, nil
}

// Date returns the resolved YYYYMMDD ingestion date.
func (p *Parser) Date() string { return p.yyyymmdd }

// IterRows streams the input line by line, calling fn with the 1-based
// line number and the trimmed columns. Blank lines are skipped. The first
// error from fn or the splitter stops iteration; split errors carry the
// offending line number.
func (p *Parser) IterRows(fn func(lineNo int, cols []string) error) error {
	scanner := bufio.NewScanner(p.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols, err := p.splitter.Split(line)
		if err != nil {
			return attachLine(err, lineNo)
		}
		if err := fn(lineNo, cols); err != nil {
			return attachLine(err, lineNo)
		}
	}
	return scanner.Err()
}

// attachLine adds the offending line number to errx errors so operators
// can locate the row in the source file.
func attachLine(err error, lineNo int) error {
	if e, ok := err.(*errx.Error); ok {
		return e.WithDetail("line", lineNo)
	}
	return err
}

// NormalizeFilename rewrites any uploaded name to NOMBRE_YYYYMMDD.txt:
// the stem uppercased with non-alphanumerics collapsed to '_', the date
// taken from the name itself or the override, and a forced .txt extension.
func NormalizeFilename(originalName, yyyymmdd string) (string, error) {
	// Drop any path components, windows or unix.
	name := originalName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	if m := filenameRE.FindStringSubmatch(name); m != nil {
		return strings.ToUpper(m[1]) + "_" + m[2] + ".txt", nil
	}

	date := ""
	if isYYYYMMDD(yyyymmdd) {
		date = yyyymmdd
	} else if found := dateRE.FindString(name); found != "" {
		date = found
	}
	if date == "" {
		return "", ErrBadFilename().
			WithDetail("filename", originalName).
			WithDetail("reason", "no YYYYMMDD date found")
	}

	stem := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		stem = name[:i]
	}
	prefix := strings.Trim(nonWordRE.ReplaceAllString(stem, "_"), "_")
	if prefix == "" {
		prefix = "PRUEBA"
	}
	return strings.ToUpper(prefix) + "_" + date + ".txt", nil
}

func isYYYYMMDD(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
