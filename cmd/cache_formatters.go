package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func printHeader(title string) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len(title)))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatSize(size int64) string {
	return humanize.Bytes(uint64(size))
}

func formatAge(t time.Time) string {
	return humanize.Time(t)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func truncateKey(key string, max int) string {
	if len(key) <= max {
		return key
	}
	return key[:max-3] + "..."
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
