package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/service"
	"go_5_flashcard_srs/internal/srs"
)

type summary struct {
	Reviewed  int
	Remaining int
}

var gradeKeys = map[string]srs.Quality{
	"1": srs.QualityAgain, "again": srs.QualityAgain,
	"3": srs.QualityHard, "hard": srs.QualityHard,
	"4": srs.QualityGood, "good": srs.QualityGood,
	"5": srs.QualityEasy, "easy": srs.QualityEasy,
}

// runStudy は復習対象カードを1枚ずつ出題し、入力された評価で採点します。
// "q" か入力終端でセッションを終了する。
func runStudy(ctx context.Context, in io.Reader, out io.Writer, review service.ReviewService, userID uuid.UUID, cards []model.DueCardResponse) (summary, error) {
	byID := make(map[uuid.UUID]model.DueCardResponse, len(cards))
	entries := make([]srs.Entry, 0, len(cards))
	for _, c := range cards {
		byID[c.CardID] = c
		entries = append(entries, srs.Entry{
			CardID: c.CardID,
			DeckID: c.DeckID,
			State: srs.State{
				Interval:   c.Interval,
				Repetition: c.Repetition,
				EFactor:    c.EFactor,
				NextReview: c.NextReview,
			},
		})
	}

	session := srs.NewSession(entries)
	scanner := bufio.NewScanner(in)

	if session.Remaining() == 0 {
		fmt.Fprintln(out, "No cards due. Come back later!")
		return summary{}, nil
	}
	fmt.Fprintf(out, "%d cards due.\n", session.Remaining())

	for {
		if err := ctx.Err(); err != nil {
			return summary{Reviewed: session.Reviewed(), Remaining: session.Remaining()}, err
		}
		entry, ok := session.Next()
		if !ok {
			break
		}
		card := byID[entry.CardID]

		fmt.Fprintf(out, "\n[%d left] %s\n", session.Remaining(), card.WordEN)
		fmt.Fprint(out, "(press Enter to reveal) ")
		if !scanner.Scan() {
			return summary{Reviewed: session.Reviewed(), Remaining: session.Remaining()}, scanner.Err()
		}
		if isQuit(scanner.Text()) {
			break
		}
		printBack(out, card)

		q, quit, err := readGrade(scanner, out)
		if err != nil || quit {
			return summary{Reviewed: session.Reviewed(), Remaining: session.Remaining()}, err
		}

		progress, err := review.GradeCard(ctx, userID, entry.CardID, int(q))
		if err != nil {
			return summary{Reviewed: session.Reviewed(), Remaining: session.Remaining()}, fmt.Errorf("grade card %s: %w", entry.CardID, err)
		}
		session.Record(entry.CardID, q)

		if q == srs.QualityAgain {
			fmt.Fprintln(out, "-> again later in this session")
		} else {
			fmt.Fprintf(out, "-> next review %s\n", progress.NextReview.Local().Format("2006-01-02 15:04"))
		}
	}

	fmt.Fprintln(out, "\nSession complete.")
	return summary{Reviewed: session.Reviewed(), Remaining: session.Remaining()}, nil
}

func printBack(out io.Writer, card model.DueCardResponse) {
	fmt.Fprintf(out, "  %s", card.WordES)
	if card.Phonetic != "" {
		fmt.Fprintf(out, "  /%s/", strings.Trim(card.Phonetic, "/"))
	}
	fmt.Fprintln(out)
	for _, ex := range card.Examples {
		fmt.Fprintf(out, "  - %s\n", ex)
	}
}

// readGrade は有効な評価が入力されるまで繰り返し尋ねます
func readGrade(scanner *bufio.Scanner, out io.Writer) (srs.Quality, bool, error) {
	for {
		fmt.Fprint(out, "Grade [1=again 3=hard 4=good 5=easy, q=quit]: ")
		if !scanner.Scan() {
			return 0, true, scanner.Err()
		}
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if isQuit(text) {
			return 0, true, nil
		}
		if q, ok := gradeKeys[text]; ok {
			return q, false, nil
		}
		fmt.Fprintf(out, "unknown grade %q\n", text)
	}
}

func isQuit(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "q" || s == "quit"
}
