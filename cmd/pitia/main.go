// Copyright 2025 Stayely
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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	pitia "github.com/stayely/pitia-assistente"
	"github.com/stayely/pitia-assistente/assistant"
	"github.com/stayely/pitia-assistente/config"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/storage"
)

// exitWords end an interactive chat session.
var exitWords = map[string]struct{}{
	"sair":  {},
	"parar": {},
	"adeus": {},
	"exit":  {},
	"quit":  {},
}

const correctionPrefix = "correção:"

func main() {
	app := &cli.App{
		Name:  "pitia",
		Usage: "Assistente de perguntas e respostas em português",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive question/answer session",
				Action: chatCommand,
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question and exit",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:      "teach",
				Usage:     "Teach an answer for a topic",
				ArgsUsage: "<topic> <answer>",
				Action:    teachCommand,
			},
			{
				Name:      "forget",
				Usage:     "Remove a learned answer",
				ArgsUsage: "<question>",
				Action:    forgetCommand,
			},
			{
				Name:   "seed",
				Usage:  "Bulk-load learned pairs from a JSON file",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "JSON file with [{\"pergunta\": ..., \"resposta\": ...}]",
					},
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Replace answers for questions that already exist",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig builds the effective configuration from file, environment
// and command-line overrides, then configures the default logger.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if dbPath := c.String("db"); dbPath != "" {
		cfg.DataDir = dbPath
	}
	if level := c.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stdinConfirmer asks the user on the terminal whether a question is a
// paraphrase of a stored one.
type stdinConfirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

func (s *stdinConfirmer) ConfirmParaphrase(question, candidate string) bool {
	fmt.Fprintf(s.out, "Você quis dizer '%s'? (s/n) ", candidate)
	if !s.in.Scan() {
		return false
	}
	reply := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return reply == "s" || reply == "sim"
}

func chatCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	confirmer := &stdinConfirmer{in: scanner, out: os.Stdout}

	app, err := pitia.Open(cfg, pitia.WithConfirmer(confirmer))
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer app.Close()

	fmt.Println("Pítia pronta. Digite sua pergunta ('sair' para encerrar).")
	ctx := context.Background()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if _, ok := exitWords[strings.ToLower(input)]; ok {
			fmt.Println("Até logo!")
			break
		}

		if strings.HasPrefix(strings.ToLower(input), correctionPrefix) {
			if err := app.Assistant().Correct(ctx, input); err != nil {
				switch err {
				case assistant.ErrNoPreviousQuestion:
					fmt.Println("Não há pergunta anterior para corrigir.")
				case assistant.ErrEmptyCorrection:
					fmt.Println("A correção está vazia.")
				default:
					fmt.Printf("Erro ao registrar correção: %v\n", err)
				}
				continue
			}
			fmt.Println("Correção registrada. Obrigada!")
			continue
		}

		start := time.Now()
		answer, err := app.Assistant().Respond(ctx, input)
		if err != nil {
			fmt.Printf("Erro ao responder: %v\n", err)
			continue
		}
		printAnswer(os.Stdout, answer, time.Since(start))
	}
	return scanner.Err()
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := pitia.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer app.Close()

	start := time.Now()
	answer, err := app.Assistant().Respond(context.Background(), question)
	if err != nil {
		return err
	}
	printAnswer(os.Stdout, answer, time.Since(start))
	return nil
}

func teachCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: pitia teach <topic> <answer>")
	}
	topic, answer := args[0], strings.Join(args[1:], " ")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := pitia.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer app.Close()

	pair := &core.LearnedPair{Question: topic, Answer: answer}
	if err := app.LearnedRepository().Put(context.Background(), pair, true); err != nil {
		return fmt.Errorf("failed to store pair: %w", err)
	}
	fmt.Printf("Aprendido: '%s'\n", topic)
	return nil
}

func forgetCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := pitia.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer app.Close()

	if err := app.LearnedRepository().Delete(context.Background(), question); err != nil {
		return fmt.Errorf("failed to delete pair: %w", err)
	}
	fmt.Printf("Esquecido: '%s'\n", question)
	return nil
}

// seedPair is the JSON shape accepted by the seed command.
type seedPair struct {
	Question string `json:"pergunta"`
	Answer   string `json:"resposta"`
}

// defaultSeedPairs give a fresh database something to answer with.
var defaultSeedPairs = []seedPair{
	{"o que é fotossíntese", "É o processo pelo qual as plantas convertem luz solar em energia química."},
	{"qual é a capital do brasil", "Brasília."},
	{"quem escreveu dom casmurro", "Machado de Assis."},
	{"quantos planetas existem no sistema solar", "Oito planetas."},
	{"qual é o maior rio do mundo", "O rio Amazonas é o maior em volume de água."},
	{"o que é gravidade", "É a força de atração entre corpos com massa."},
	{"quem pintou a mona lisa", "Leonardo da Vinci."},
	{"qual é o maior país do mundo", "A Rússia."},
}

func seedCommand(c *cli.Context) error {
	pairs := defaultSeedPairs
	if fileName := c.String("file"); fileName != "" {
		data, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("reading seed file: %w", err)
		}
		pairs = nil
		if err := json.Unmarshal(data, &pairs); err != nil {
			return fmt.Errorf("parsing seed file: %w", err)
		}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := pitia.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer app.Close()

	ctx := context.Background()
	overwrite := c.Bool("overwrite")
	stored, skipped := 0, 0
	for _, p := range pairs {
		pair := &core.LearnedPair{Question: p.Question, Answer: p.Answer}
		err := app.LearnedRepository().Put(ctx, pair, overwrite)
		switch {
		case errors.Is(err, storage.ErrDuplicateKey):
			skipped++
		case err != nil:
			return fmt.Errorf("storing pair %q: %w", p.Question, err)
		default:
			stored++
		}
	}
	fmt.Printf("Seed concluído: %d pares gravados, %d ignorados.\n", stored, skipped)
	return nil
}

func printAnswer(w io.Writer, answer *core.Answer, elapsed time.Duration) {
	fmt.Fprintln(w, answer.Response)
	if answer.Source.Kind != core.SourceNone {
		fmt.Fprintf(w, "[fonte: %s", answer.Source.Kind)
		if answer.Source.URL != "" {
			fmt.Fprintf(w, " (%s)", answer.Source.URL)
		}
		fmt.Fprintf(w, " | %.2fs]\n", elapsed.Seconds())
	}
}

func setupLogger(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}
