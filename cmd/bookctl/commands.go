// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/platform/config"
	"github.com/taibuivan/bookhub/internal/platform/database/migrations"
	"github.com/taibuivan/bookhub/internal/platform/migration"
)

// =============================================================================
// CATALOGUE
// =============================================================================

func newBooksCmd(opts *options) *cobra.Command {
	var term, category string

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closeFn, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			books, err := application.Catalog.Filter(cmd.Context(), term, category)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), books)
			}

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(table, "ID\tTITLE\tAUTHOR\tFROM\tLIKES")
			for _, book := range books {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d\n", book.ID, book.Title, book.Author, formatMinPrice(book), book.Likes)
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVar(&term, "q", "", "match title or author, ignoring case")
	cmd.Flags().StringVar(&category, "category", "", "exact category label")
	return cmd
}

func newBookCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "book <id>",
		Short: "Show one book with its listings and chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, closeFn, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			book, err := application.Catalog.GetBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			book.Prices = catalog.SortedListings(book)

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), book)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d) by %s\n", book.Title, book.PublishYear, book.Author)
			fmt.Fprintf(out, "Categories: %s\n", strings.Join(book.Categories, ", "))
			fmt.Fprintf(out, "From: %s\n\n", formatMinPrice(book))

			table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(table, "LISTING\tPRICE\tCONDITION\tSELLER")
			for _, listing := range book.Prices {
				fmt.Fprintf(table, "%s\t%d\t%s\t%s\n", listing.ID, listing.Price, listing.Condition, listing.SellerName)
			}
			if err := table.Flush(); err != nil {
				return err
			}

			if len(book.Chapters) > 0 {
				fmt.Fprintln(out, "\nChapters:")
				for _, chapter := range book.Chapters {
					fmt.Fprintf(out, "  %s  %s\n", chapter.ID, chapter.Title)
				}
			}
			return nil
		},
	}
}

func formatMinPrice(book *catalog.Book) string {
	lowest, ok := catalog.MinPrice(book)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", lowest)
}

// =============================================================================
// BOARD
// =============================================================================

func newDiscussionsCmd(opts *options) *cobra.Command {
	var (
		bookID, chapterID, term string
		page                    int
	)

	cmd := &cobra.Command{
		Use:   "discussions",
		Short: "List board threads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closeFn, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			filter := discussion.Filter{Search: term}
			if bookID != "" {
				filter.BookID = &bookID
			}
			if chapterID != "" {
				filter.ChapterID = &chapterID
			}

			result, err := application.Discussion.List(cmd.Context(), nil, filter, page)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"data": result.Items, "meta": result.Meta})
			}

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(table, "ID\tBOOK\tCREATED\tLIKES\tAUTHOR\tTITLE")
			for _, thread := range result.Items {
				fmt.Fprintf(table, "%s\t%s\t%s\t%d\t%s\t%s\n",
					thread.ID, thread.BookID, thread.CreatedAt.Format("2006-01-02"), thread.Likes, thread.Author, thread.Title)
			}
			if err := table.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n", result.Meta.Page, result.Meta.TotalPages, result.Meta.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookID, "book", "", "only threads of this book id")
	cmd.Flags().StringVar(&chapterID, "chapter", "", "only threads of this chapter id")
	cmd.Flags().StringVar(&term, "q", "", "match title, content or author, ignoring case")
	cmd.Flags().IntVar(&page, "page", 1, "page number, 1-indexed")
	return cmd
}

// =============================================================================
// DATABASE
// =============================================================================

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return fmt.Errorf("migrate: DATABASE_URL is not set")
			}

			if err := migration.RunUp(cfg.DatabaseURL, migrations.FS, opts.logger(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
