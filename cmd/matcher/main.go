// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/kindred"
	"github.com/poiesic/kindred/core"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	db, err := kindred.NewDatabase("./kindred_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()
	engine, err := db.NewMatchEngine()
	if err != nil {
		panic(err)
	}
	defer engine.Release()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: matcher <user-id> [keyword...]")
		os.Exit(1)
	}
	userId, err := strconv.ParseUint(os.Args[1], 10, 64)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	var results []*core.MatchResult
	if len(os.Args) > 2 {
		results, err = engine.MatchKeyword(ctx, core.ID(userId), strings.Join(os.Args[2:], " "))
	} else {
		results, err = engine.Match(ctx, core.ID(userId))
	}
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d candidates\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: user %d [%0.3f]\n", i, hit.UserId, hit.Score)
	}
}
