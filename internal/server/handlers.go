package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/spacesedan/lyricflow/internal/ingest"
	"github.com/spacesedan/lyricflow/internal/models"
	"github.com/spacesedan/lyricflow/internal/sentiment"
)

const (
	TOP_WORDS        = 10
	emptyTextMessage = "Please write something to analyze."
	tooLargeMessage  = "Request body is larger than 1 MiB."
)

type indexView struct {
	Warning string
	Text    string
	Accept  string
}

type wordBar struct {
	Word    string
	Count   int
	Percent int
}

type sentenceView struct {
	Index    int
	Emoji    string
	Text     string
	Polarity float64
}

type resultView struct {
	Report              models.AnalysisReport
	Preview             string
	Band                models.SentimentBand
	BandEmoji           string
	PolarityCaption     string
	PolarityPercent     int
	SubjectivityPercent int
	Subjective          bool
	SubjectivityCaption string
	TopWords            []wordBar
	Sentences           []sentenceView
}

type errorView struct {
	Message string
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index", indexView{Accept: acceptList()})
}

func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingest.MAX_UPLOAD_BYTES+64<<10)

	text, preview, err := readFormText(r)
	if err != nil {
		slog.Warn("[Server] Rejected upload", slog.String("error", err.Error()))
		s.render(w, http.StatusBadRequest, "index", indexView{Warning: err.Error(), Accept: acceptList()})
		return
	}
	if strings.TrimSpace(text) == "" {
		s.render(w, http.StatusBadRequest, "index", indexView{Warning: emptyTextMessage, Accept: acceptList()})
		return
	}

	report, err := s.analyzer.Report(r.Context(), text)
	if err != nil {
		slog.Error("[Server] Analysis failed", slog.String("error", err.Error()))
		s.render(w, http.StatusInternalServerError, "error", errorView{Message: "Analysis failed: " + err.Error()})
		return
	}

	s.render(w, http.StatusOK, "result", buildResultView(report, preview))
}

func (s *Server) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, ingest.MAX_UPLOAD_BYTES)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: tooLargeMessage})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: emptyTextMessage})
		return
	}

	report, err := s.analyzer.Report(r.Context(), req.Text)
	if err != nil {
		slog.Error("[Server] Analysis failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy := s.translatorHealthy == nil || s.translatorHealthy.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"translator_healthy": healthy,
	})
}

// readFormText prefers an uploaded file over the text area. preview is only
// set for uploads.
func readFormText(r *http.Request) (text, preview string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(ingest.MAX_UPLOAD_BYTES); err != nil {
			return "", "", errors.New("could not read the uploaded form")
		}
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return "", "", errors.New("could not read the uploaded file")
			}
			content, err := ingest.DecodeUpload(header.Filename, data)
			if err != nil {
				return "", "", err
			}
			return content, ingest.Preview(content), nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return "", "", errors.New("could not read the uploaded file")
		}
	}
	return r.FormValue("text"), "", nil
}

func buildResultView(report models.AnalysisReport, preview string) resultView {
	band := sentiment.ClassifyPolarity(report.SentimentPolarity)
	view := resultView{
		Report:              report,
		Preview:             preview,
		Band:                band,
		BandEmoji:           sentiment.BandEmoji(band),
		PolarityCaption:     sentiment.PolarityCaption(band),
		PolarityPercent:     percent((report.SentimentPolarity + 1) / 2),
		SubjectivityPercent: percent(report.Subjectivity),
		Subjective:          sentiment.IsSubjective(report.Subjectivity),
		SubjectivityCaption: sentiment.SubjectivityCaption(report.Subjectivity),
	}

	top := report.TopWords(TOP_WORDS)
	for _, wf := range top {
		view.TopWords = append(view.TopWords, wordBar{
			Word:    wf.Word,
			Count:   wf.Count,
			Percent: percent(float64(wf.Count) / float64(top[0].Count)),
		})
	}

	for _, ss := range report.SentenceSentiments {
		view.Sentences = append(view.Sentences, sentenceView{
			Index:    ss.Index,
			Emoji:    sentiment.BandEmoji(ss.Band),
			Text:     ss.Text,
			Polarity: ss.Polarity,
		})
	}
	return view
}

func percent(fraction float64) int {
	return int(math.Round(math.Max(0, math.Min(1, fraction)) * 100))
}

func acceptList() string {
	return strings.Join(ingest.SupportedExtensions, ",")
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("[Server] Failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[Server] Failed to encode response", slog.String("error", err.Error()))
	}
}
