package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// DefaultNumShows caps the tracked list when no override is configured.
const DefaultNumShows = 200

// Options names the input files the loader probes, in priority order.
type Options struct {
	ShowsListPath    string
	NetflixTitlesCSV string
	NumShows         int
}

// Load resolves the tracked-show list. Priority: the plain-text override
// file, then the Netflix titles CSV, then the built-in curated list.
func Load(opts Options) []string {
	if opts.NumShows <= 0 {
		opts.NumShows = DefaultNumShows
	}

	if opts.ShowsListPath != "" {
		if shows, err := loadShowsList(opts.ShowsListPath, opts.NumShows); err == nil {
			log.Printf("📺 Loaded %d shows from %s", len(shows), opts.ShowsListPath)
			return shows
		}
	}

	if opts.NetflixTitlesCSV != "" {
		if shows, err := loadNetflixTitles(opts.NetflixTitlesCSV, opts.NumShows); err == nil {
			log.Printf("📺 Loaded %d shows from %s", len(shows), opts.NetflixTitlesCSV)
			return shows
		}
	}

	shows := curatedShows(opts.NumShows)
	log.Printf("📺 Using the curated list of %d shows", len(shows))
	return shows
}

func loadShowsList(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var shows []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		title := strings.TrimSpace(scanner.Text())
		if title == "" {
			continue
		}
		shows = append(shows, title)
		if len(shows) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, fmt.Errorf("%s: no titles", path)
	}
	return shows, nil
}

// loadNetflixTitles prefers TV titles from the catalog CSV, falling back to
// all titles when fewer TV titles exist than requested. First occurrence wins
// on duplicates.
func loadNetflixTitles(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	titleIdx, typeIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			titleIdx = i
		case "type":
			typeIdx = i
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("%s: no title column", path)
	}

	var tvTitles, allTitles []string
	seen := map[string]bool{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if titleIdx >= len(record) {
			continue
		}
		title := strings.TrimSpace(record[titleIdx])
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		allTitles = append(allTitles, title)
		if typeIdx >= 0 && typeIdx < len(record) &&
			strings.Contains(strings.ToLower(record[typeIdx]), "tv") {
			tvTitles = append(tvTitles, title)
		}
	}

	candidates := tvTitles
	if typeIdx < 0 || len(candidates) < limit {
		candidates = allTitles
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: no titles", path)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func curatedShows(limit int) []string {
	shows := make([]string, 0, limit)
	seen := map[string]bool{}
	for _, title := range trackedShows {
		if seen[title] {
			continue
		}
		seen[title] = true
		shows = append(shows, title)
		if len(shows) == limit {
			break
		}
	}
	return shows
}
