package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	log "github.com/sirupsen/logrus"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// estimateTokens approximates AI context cost as one token per four
// characters, rounded up.
func estimateTokens(characterCount int) int {
	if characterCount <= 0 {
		return 0
	}
	return (characterCount + 3) / 4
}

// binaryExtensions are never read or tokenized; membership is decided
// by extension alone, file content is not sniffed.
var binaryExtensions = map[string]bool{
	// images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true, ".ico": true,
	// audio / video
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".ogg": true, ".wav": true, ".flac": true,
	// archives
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".dmg": true, ".iso": true,
	// compiled objects and executables
	".bin": true, ".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".class": true, ".jar": true, ".war": true, ".a": true, ".o": true,
	// fonts
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true, ".eot": true,
	// databases
	".db": true, ".sqlite": true, ".sqlite3": true, ".mdb": true,
	// binary documents
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true,
}

func isBinaryExtension(ext string) bool {
	return binaryExtensions[strings.ToLower(ext)]
}

// Tokenizer is an interface for different token counting implementations.
type Tokenizer interface {
	CountTokens(text string) int
	Close() // resource cleanup for implementations that need it
}

// --- Heuristic (default) ---

// HeuristicTokenizer counts with the four-characters-per-token estimate.
// It is the default because it needs no model files and is fully
// deterministic across machines.
type HeuristicTokenizer struct{}

func (HeuristicTokenizer) CountTokens(text string) int {
	return estimateTokens(len(text))
}

func (HeuristicTokenizer) Close() {}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	tokens := w.ttk.EncodeOrdinary(text)
	return len(tokens)
}

func (w *TiktokenWrapper) Close() {
	// no explicit close needed for tiktoken-go
}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		log.Warnf("HF tokenizer failed to encode text: %v", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {
	// sugarme/tokenizer has no explicit Close/Free method
}

// --- Tokenizer Loading Logic ---

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// getTokenizer returns the tokenizer selected by flags. The heuristic
// estimator is the default; exact counters are opt-in because they may
// download model files on first use.
func getTokenizer() (Tokenizer, error) {
	log.Debugf("initializing tokenizer (type: %s, model: %s, file: %s)", tokenizerType, tokenizerModel, tokenizerFile)

	switch strings.ToLower(tokenizerType) {
	case "", "heuristic":
		return HeuristicTokenizer{}, nil
	case "tiktoken":
		return loadTiktoken()
	case "huggingface":
		return loadHuggingFace()
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'heuristic', 'tiktoken' or 'huggingface'", tokenizerType)
	}
}

func loadTiktoken() (Tokenizer, error) {
	model := tokenizerModel
	if model == "" {
		model = defaultTiktokenModel
		log.Debugf("no tiktoken model specified, using default: %s", model)
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		log.Warnf("tiktoken model '%s' not found, falling back to '%s': %v", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace() (Tokenizer, error) {
	if tokenizerFile != "" {
		log.Debugf("loading HuggingFace tokenizer from file: %s", tokenizerFile)
		ttk, err := pretrained.FromFile(tokenizerFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", tokenizerFile, err)
		}
		return &HFTokenizerWrapper{htk: ttk}, nil
	}

	model := tokenizerModel
	if model == "" {
		model = defaultHFModel
		log.Debugf("no HuggingFace model specified, using default: %s", model)
	}
	log.Debugf("loading HuggingFace tokenizer for model: %s (this may download files)", model)

	// sugarme/tokenizer resolves the hub identifier to a cached
	// tokenizer.json, downloading it when absent.
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}

	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk}, nil
}
