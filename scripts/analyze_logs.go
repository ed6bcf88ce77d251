package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalLines         int
	TotalErrors        int
	LoginSuccess       int
	LoginFailures      int
	Registrations      int
	ReferredSignups    int
	Verifications      int
	RateLimited        int
	Redemptions        int
	EventsCreated      int
	FailedRequests     int
	UserActivities     map[string]int
	ErrorPatterns      map[string]int
	StatusDistribution map[int]int
}

// logEntry holds the zap JSON fields the report reads
type logEntry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Status  int    `json:"status"`
	UserID  uint   `json:"user_id"`
	Action  string `json:"action"`
}

var (
	userIDRegex = regexp.MustCompile(`user (\d+)`)
	digitsRegex = regexp.MustCompile(`\d+`)
)

func main() {
	logFile := flag.String("file", "./logs/app.log", "zap JSON log file to analyze")
	flag.Parse()

	stats := &LogStats{
		UserActivities:     make(map[string]int),
		ErrorPatterns:      make(map[string]int),
		StatusDistribution: make(map[int]int),
	}

	if err := analyzeLog(*logFile, stats); err != nil {
		fmt.Printf("Error reading log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	printReport(stats)
}

func analyzeLog(logFile string, stats *LogStats) error {
	file, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry logEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		stats.TotalLines++
		classify(entry, stats)
	}
	return scanner.Err()
}

func classify(entry logEntry, stats *LogStats) {
	msg := entry.Message

	if entry.Level == "error" {
		stats.TotalErrors++
		extractErrorPattern(msg, stats)
	}

	switch {
	case msg == "request":
		stats.StatusDistribution[entry.Status]++
		if entry.Status >= 500 {
			stats.FailedRequests++
		}
	case msg == "rate limit exceeded":
		stats.RateLimited++
	case msg == "referral activity" && entry.Action == "redeem_points":
		extractUserActivity(fmt.Sprintf("user %d", entry.UserID), stats)
	case strings.HasPrefix(msg, "Login successful"):
		stats.LoginSuccess++
		extractUserActivity(msg, stats)
	case strings.HasPrefix(msg, "Login failed"):
		stats.LoginFailures++
	case strings.Contains(msg, "registered with referral"):
		stats.Registrations++
		stats.ReferredSignups++
		extractUserActivity(msg, stats)
	case strings.HasSuffix(msg, " registered"):
		stats.Registrations++
		extractUserActivity(msg, stats)
	case strings.HasSuffix(msg, "verified email"):
		stats.Verifications++
		extractUserActivity(msg, stats)
	case strings.Contains(msg, "redeemed") && strings.Contains(msg, "points"):
		stats.Redemptions++
	case strings.HasPrefix(msg, "Event ") && strings.Contains(msg, " created by user "):
		stats.EventsCreated++
	}
}

func extractUserActivity(msg string, stats *LogStats) {
	if m := userIDRegex.FindStringSubmatch(msg); len(m) == 2 && m[1] != "0" {
		stats.UserActivities["user "+m[1]]++
	}
}

// extractErrorPattern groups error messages by replacing numbers with N
func extractErrorPattern(msg string, stats *LogStats) {
	if i := strings.Index(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	stats.ErrorPatterns[digitsRegex.ReplaceAllString(msg, "N")]++
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("Entries read: %d\n", stats.TotalLines)

	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Registrations: %d (referred: %d)\n", stats.Registrations, stats.ReferredSignups)
	fmt.Printf("   Email Verifications: %d\n", stats.Verifications)

	fmt.Println("\n2. Referral & Events:")
	fmt.Printf("   Point Redemptions: %d\n", stats.Redemptions)
	fmt.Printf("   Events Created: %d\n", stats.EventsCreated)

	fmt.Println("\n3. Traffic:")
	fmt.Printf("   Rate Limited Requests: %d\n", stats.RateLimited)
	fmt.Printf("   Failed Requests (5xx): %d\n", stats.FailedRequests)
	printStatusDistribution(stats.StatusDistribution)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n5. Most Active Users:")
	printTop(stats.UserActivities, 5, "activities")

	fmt.Println("\n6. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printStatusDistribution(dist map[int]int) {
	codes := make([]int, 0, len(dist))
	for code := range dist {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("   HTTP %d: %d\n", code, dist[code])
	}
}

func printTop(counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var list []entry
	for k, n := range counts {
		list = append(list, entry{k, n})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].count == list[j].count {
			return list[i].key < list[j].key
		}
		return list[i].count > list[j].count
	})

	for i, e := range list {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}
