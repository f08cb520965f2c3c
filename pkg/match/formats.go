package match

import (
	"path/filepath"
	"sort"
	"strings"
)

// Format is a STILTS table format tag.
type Format string

const (
	FormatColFits Format = "colfits"
	FormatCSV     Format = "csv"
	FormatECSV    Format = "ecsv"
	FormatFITS    Format = "fits"
	FormatTST     Format = "tst"
	FormatVOTable Format = "votable"
)

var supportedFormats = map[Format]struct{}{
	FormatColFits: {},
	FormatCSV:     {},
	FormatECSV:    {},
	FormatFITS:    {},
	FormatTST:     {},
	FormatVOTable: {},
}

// SupportedFormats returns the accepted format tags in sorted order.
func SupportedFormats() []string {
	out := make([]string, 0, len(supportedFormats))
	for f := range supportedFormats {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func unsupportedFormat(field, ext string) *ConfigError {
	return configErrorf(field, ErrUnsupportedFormat,
		"unsupported file format '%s'. Allowed formats are: [%s]", ext, strings.Join(SupportedFormats(), ", "))
}

// ParseFormat checks that s is one of the supported tags. Matching is case-sensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := supportedFormats[f]; !ok {
		return "", unsupportedFormat("format", s)
	}
	return f, nil
}

// InferFormat derives the format from the last dot-separated segment of the file name,
// so "fits_table.ptable.fits" yields "fits".
func InferFormat(filename string) (Format, error) {
	base := filepath.Base(filepath.FromSlash(filename))
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return "", configErrorf("format", ErrMissingExtension, "no extension found in %q", filename)
	}
	ext := base[idx+1:]
	if _, ok := supportedFormats[Format(ext)]; !ok {
		return "", unsupportedFormat("format", ext)
	}
	return Format(ext), nil
}
