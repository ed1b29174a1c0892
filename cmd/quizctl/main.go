package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/philosophy-quiz/internal/cache"
	"github.com/SAP-F-2025/philosophy-quiz/internal/config"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories/file"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories/postgres"
	"github.com/SAP-F-2025/philosophy-quiz/internal/services"
	"github.com/SAP-F-2025/philosophy-quiz/internal/utils"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/SAP-F-2025/philosophy-quiz/pkg"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	validateCmd  = kingpin.Command("validate", "Check a content file and list every malformed topic")
	validateFile = validateCmd.Flag("file", "Content file (.yaml or .json)").Required().ExistingFile()

	importCmd  = kingpin.Command("import", "Import topics from a spreadsheet into a content file")
	importXLSX = importCmd.Flag("xlsx", "Source spreadsheet (.xlsx or .csv)").Required().ExistingFile()
	importOut  = importCmd.Flag("out", "Content file to create or update").Required().String()

	exportCmd    = kingpin.Command("export", "Export topics from a content file to a spreadsheet")
	exportFile   = exportCmd.Flag("file", "Content file (.yaml or .json)").Required().ExistingFile()
	exportXLSX   = exportCmd.Flag("xlsx", "Destination spreadsheet (.xlsx or .csv)").Required().String()
	exportTopics = exportCmd.Flag("topic", "Topic key to export; repeat for several, omit for all").Strings()

	seedCmd  = kingpin.Command("seed", "Write the topics of a content file to Postgres")
	seedFile = seedCmd.Flag("file", "Content file (.yaml or .json)").Required().ExistingFile()
)

var Log = utils.NewDevelopmentLogger()

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("0.1")
	kingpin.CommandLine.Help = "Philosophy quiz content tools"

	ctx := context.Background()
	serviceLogger := services.NewServiceLogger(utils.ToSlogLogger(Log), services.LogConfig{Service: "quizctl", Component: "cli"})
	v := validator.New()

	switch kingpin.Parse() {
	case "validate":
		content := services.NewContentService(file.NewTopicFile(*validateFile), v, serviceLogger)
		topics := readTopics(*validateFile)
		rejected := content.Validate(topics)
		for _, r := range rejected {
			for _, e := range r.Errors {
				fmt.Fprintf(os.Stderr, "%s: %s %s\n", r.Key, e.Field, e.Message)
			}
		}
		if len(rejected) > 0 {
			fatalf("%d of %d topics are malformed", len(rejected), len(topics))
		}
		Log.Info("Content is valid", "file", *validateFile, "topics", len(topics))

	case "import":
		reader, err := os.Open(*importXLSX)
		if err != nil {
			fatalf("open %s: %v", *importXLSX, err)
		}
		defer reader.Close()

		svc := services.NewImportExportService(file.NewTopicFile(*importOut), serviceLogger, v)
		result, err := svc.ImportTopicsFromFile(ctx, reader, *importXLSX)
		if err != nil {
			fatalf("import failed: %v", err)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "row %d %s: %s\n", e.Row, e.Column, e.Message)
		}
		Log.Info("Import finished",
			"status", result.Status,
			"imported_topics", len(result.Imported),
			"rows", result.TotalRows,
			"errors", result.ErrorCount)
		if result.Status != models.ImportCompleted {
			os.Exit(1)
		}

	case "export":
		svc := services.NewImportExportService(file.NewTopicFile(*exportFile), serviceLogger, v)
		var (
			data []byte
			err  error
		)
		if strings.EqualFold(filepath.Ext(*exportXLSX), ".csv") {
			data, err = svc.ExportTopicsToCSV(ctx, *exportTopics)
		} else {
			data, err = svc.ExportTopicsToExcel(ctx, *exportTopics)
		}
		if err != nil {
			fatalf("export failed: %v", err)
		}
		if err := os.WriteFile(*exportXLSX, data, 0o644); err != nil {
			fatalf("write %s: %v", *exportXLSX, err)
		}
		Log.Info("Exported topics", "file", *exportXLSX)

	case "seed":
		topics := readTopics(*seedFile)
		content := services.NewContentService(file.NewTopicFile(*seedFile), v, serviceLogger)
		if rejected := content.Validate(topics); len(rejected) > 0 {
			fatalf("%d topics are malformed; run validate first", len(rejected))
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fatalf("load config: %v", err)
		}
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			fatalf("%v", err)
		}
		repo := postgres.NewTopicPostgreSQL(db, cache.NewMemoryCache(), utils.ToSlogLogger(Log))
		if err := repo.Save(ctx, topics); err != nil {
			fatalf("seed failed: %v", err)
		}
		Log.Info("Seeded topics", "count", len(topics))

	default:
		fatalf("unknown command")
	}
}

func readTopics(path string) []*models.Topic {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read %s: %v", path, err)
	}
	doc, err := file.Decode(path, data)
	if err != nil {
		fatalf("parse %s: %v", path, err)
	}
	return doc.Topics
}

func fatalf(format string, args ...any) {
	Log.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
