package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"dil-avcilari/internal/config"
)

func main() {
	name := flag.String("name", "", "migration name, lowercase with underscores")
	flag.Parse()

	if err := validateName(*name); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(config.MigrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	base := filepath.Join(config.MigrationsDir, fmt.Sprintf("%s_%s", version, *name))
	for _, stub := range []struct {
		path, content string
	}{
		{base + ".up.sql", "-- up migration\n"},
		{base + ".down.sql", "-- down migration\n"},
	} {
		if err := writeStub(stub.path, stub.content); err != nil {
			log.Fatalf("create migration: %v", err)
		}
		log.Printf("created %s", stub.path)
	}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("migration name is required")
	}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		return fmt.Errorf("migration name must use lowercase letters, digits or underscores")
	}
	return nil
}

func writeStub(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
