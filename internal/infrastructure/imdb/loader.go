package imdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// nullMarker is how the IMDb datasets spell "no value".
const nullMarker = `\N`

// Metadata maps a normalized title to its IMDb stats.
type Metadata map[string]models.ShowMeta

// NormalizeTitle lower-cases and trims a title, the key format of Metadata.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Load merges title.basics.tsv.gz and title.ratings.tsv.gz into a title-keyed
// metadata map. Missing files degrade to empty metadata with a warning so the
// producer keeps running without the datasets mounted.
func Load(basicsPath, ratingsPath string) Metadata {
	meta := Metadata{}

	basics, err := loadBasics(basicsPath)
	if err != nil {
		log.Printf("⚠️ IMDb basics unavailable (%v), continuing without metadata", err)
		return meta
	}

	ratings, err := loadRatings(ratingsPath)
	if err != nil {
		log.Printf("⚠️ IMDb ratings unavailable (%v), continuing without metadata", err)
		return meta
	}

	for tconst, basic := range basics {
		rating, ok := ratings[tconst]
		if !ok {
			continue
		}
		meta[NormalizeTitle(basic.title)] = models.ShowMeta{
			AverageRating:  rating.averageRating,
			NumVotes:       rating.numVotes,
			RuntimeMinutes: basic.runtimeMinutes,
		}
	}

	log.Printf("🎬 Loaded IMDb metadata for %d titles", len(meta))
	return meta
}

// Lookup returns the metadata for a title, normalizing the key first.
func (m Metadata) Lookup(title string) (models.ShowMeta, bool) {
	meta, ok := m[NormalizeTitle(title)]
	return meta, ok
}

// EstimateHours approximates watch hours from runtime minutes, one episode,
// rounded to two decimals. Unknown runtime estimates to zero.
func EstimateHours(meta models.ShowMeta) float64 {
	if meta.RuntimeMinutes <= 0 {
		return 0
	}
	hours := float64(meta.RuntimeMinutes) / 60.0
	return math.Round(hours*100) / 100
}

type basicsRow struct {
	title          string
	runtimeMinutes int
}

type ratingsRow struct {
	averageRating float64
	numVotes      int64
}

func loadBasics(path string) (map[string]basicsRow, error) {
	rows := map[string]basicsRow{}
	err := scanTSV(path, func(header map[string]int, fields []string) {
		tconst := field(fields, header, "tconst")
		title := field(fields, header, "primaryTitle")
		if tconst == "" || title == "" || title == nullMarker {
			return
		}
		runtime := 0
		if raw := field(fields, header, "runtimeMinutes"); raw != "" && raw != nullMarker {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return
			}
			runtime = parsed
		}
		rows[tconst] = basicsRow{title: title, runtimeMinutes: runtime}
	})
	return rows, err
}

func loadRatings(path string) (map[string]ratingsRow, error) {
	rows := map[string]ratingsRow{}
	err := scanTSV(path, func(header map[string]int, fields []string) {
		tconst := field(fields, header, "tconst")
		if tconst == "" {
			return
		}
		rawRating := field(fields, header, "averageRating")
		rawVotes := field(fields, header, "numVotes")
		if rawRating == nullMarker || rawVotes == nullMarker {
			return
		}
		rating, err := strconv.ParseFloat(rawRating, 64)
		if err != nil {
			return
		}
		votes, err := strconv.ParseInt(rawVotes, 10, 64)
		if err != nil {
			return
		}
		rows[tconst] = ratingsRow{averageRating: rating, numVotes: votes}
	})
	return rows, err
}

// scanTSV streams a gzip TSV line by line, calling visit with the header index
// and the split fields of each data row. The datasets are too large to slurp.
func scanTSV(path string, visit func(header map[string]int, fields []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("gunzip %s: %w", path, err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return fmt.Errorf("%s: empty file", path)
	}
	header := map[string]int{}
	for i, name := range strings.Split(scanner.Text(), "\t") {
		header[name] = i
	}

	for scanner.Scan() {
		visit(header, strings.Split(scanner.Text(), "\t"))
	}
	return scanner.Err()
}

func field(fields []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}
