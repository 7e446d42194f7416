// Package output renders the snapshot artifact: the header, the structural
// listing with statistics, the rules summary and one section per file.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const (
	banner        = "============================================================"
	separatorLine = "------------------------------------------------------------"
	listingIndent = "│  "

	structureTitle = "=== PROJECT DIRECTORY STRUCTURE ==="
	rulesTitle     = "=== EXCLUSION RULES APPLIED ==="

	projectLineFormat   = "📂 PROJECT: %s\n"
	dateLineFormat      = "📅 DATE: %s\n\n"
	directoryLineFormat = "%s📁 %s/ (%d files)"
	fileLineFormat      = "%s%s %s (%s)"
	permissionLine      = "%s🔒 Permission denied"
	errorLineFormat     = "%s❌ Error: %s"

	statisticsTitle       = "📊 STATISTICS:"
	includedFilesFormat   = "   Total files included: %d"
	excludedFilesFormat   = "   Total files excluded: %d"
	totalFilesFormat      = "   Total files: %d"
	extensionsRuleFormat  = "✓ Only including extensions: %s\n"
	fileSectionFormat     = "=== %s ===\n"
	fileMetadataFormat    = "Size: %s | Last Modified: %s\n"
	binaryBodyPlaceholder = "[Binary file - contents not displayed]"
	errorBodyFormat       = "[Error reading file: %s]"
	sectionTerminator     = "\n\n"
)

var staticRules = []string{
	"✓ Files and directories from .gitignore",
	"✓ Directories starting with '.'",
	"✓ Files with 5+ consecutive digits in filename",
	"✓ Files and directories with 'cache' in name",
}

// ArtifactWriter writes the artifact sections in order. The first write error is
// kept and returned by every later call.
type ArtifactWriter struct {
	writer     io.Writer
	extensions []string
	err        error
}

// NewArtifactWriter returns an ArtifactWriter. extensions is the active allow-list
// and is only mentioned in the rules section when non-empty.
func NewArtifactWriter(writer io.Writer, extensions []string) *ArtifactWriter {
	return &ArtifactWriter{writer: writer, extensions: extensions}
}

func (artifactWriter *ArtifactWriter) printf(format string, arguments ...any) {
	if artifactWriter.err != nil {
		return
	}
	_, artifactWriter.err = fmt.Fprintf(artifactWriter.writer, format, arguments...)
}

func (artifactWriter *ArtifactWriter) writeString(value string) {
	if artifactWriter.err != nil {
		return
	}
	_, artifactWriter.err = io.WriteString(artifactWriter.writer, value)
}

// WriteHeader writes the banner, project name and generation date.
func (artifactWriter *ArtifactWriter) WriteHeader(projectName string, generatedAt time.Time) error {
	artifactWriter.writeString(banner + "\n" + structureTitle + "\n" + banner + "\n\n")
	artifactWriter.printf(projectLineFormat, projectName)
	artifactWriter.printf(dateLineFormat, utils.FormatTimestamp(generatedAt))
	return artifactWriter.err
}

// WriteListing writes the rendered listing followed by the closing banner.
func (artifactWriter *ArtifactWriter) WriteListing(listing types.Listing) error {
	artifactWriter.writeString(strings.Join(RenderListingLines(listing), "\n"))
	artifactWriter.writeString("\n\n" + banner + "\n\n")
	return artifactWriter.err
}

// WriteRules writes the exclusion rules summary.
func (artifactWriter *ArtifactWriter) WriteRules() error {
	artifactWriter.writeString(rulesTitle + "\n")
	for _, rule := range staticRules {
		artifactWriter.writeString(rule + "\n")
	}
	if len(artifactWriter.extensions) > 0 {
		artifactWriter.printf(extensionsRuleFormat, strings.Join(artifactWriter.extensions, ", "))
	}
	artifactWriter.writeString("\n" + banner + "\n\n")
	return artifactWriter.err
}

// WriteFile writes one file section.
func (artifactWriter *ArtifactWriter) WriteFile(file types.FileContent) error {
	artifactWriter.printf(fileSectionFormat, file.RelativePath)
	artifactWriter.printf(fileMetadataFormat, utils.FormatFileSize(file.SizeBytes), utils.FormatTimestamp(file.ModTime))
	artifactWriter.writeString(separatorLine + "\n")
	artifactWriter.writeString(FileBody(file))
	artifactWriter.writeString(sectionTerminator)
	return artifactWriter.err
}

// FileBody returns the text placed in a file section's body slot.
func FileBody(file types.FileContent) string {
	switch file.Kind {
	case types.BodyBinary:
		return binaryBodyPlaceholder
	case types.BodyError:
		return fmt.Sprintf(errorBodyFormat, file.ErrorMessage)
	default:
		return file.Body
	}
}

// RenderListingLines renders listing entries as indented display lines, followed by
// the statistics block when the listing carries statistics.
func RenderListingLines(listing types.Listing) []string {
	lines := make([]string, 0, len(listing.Entries)+5)
	for _, entry := range listing.Entries {
		indent := strings.Repeat(listingIndent, entry.Depth)
		switch entry.Kind {
		case types.ListingDirectory:
			lines = append(lines, fmt.Sprintf(directoryLineFormat, indent, entry.Name, entry.FileCount))
		case types.ListingFile:
			icon := FileIcon(entry.Extension)
			lines = append(lines, fmt.Sprintf(fileLineFormat, indent, icon, entry.Name, utils.FormatFileSize(entry.SizeBytes)))
		case types.ListingPermissionDenied:
			lines = append(lines, fmt.Sprintf(permissionLine, indent))
		case types.ListingError:
			lines = append(lines, fmt.Sprintf(errorLineFormat, indent, entry.Message))
		}
	}
	if listing.Stats != nil {
		lines = append(lines,
			"",
			statisticsTitle,
			fmt.Sprintf(includedFilesFormat, listing.Stats.IncludedFiles),
			fmt.Sprintf(excludedFilesFormat, listing.Stats.ExcludedFiles),
			fmt.Sprintf(totalFilesFormat, listing.Stats.TotalFiles()),
		)
	}
	return lines
}
