// Package cls runs a pretrained sequence-classification transformer
// through ONNX Runtime. It exposes raw per-label sigmoid probabilities;
// label names live with the caller.
package cls

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the exported model artifacts.
type Config struct {
	// OrtDLL points at the onnxruntime shared library; empty uses the
	// platform default search path.
	OrtDLL        string
	ModelPath     string
	TokenizerPath string
	// MaxSeqLen is the fixed sequence length the model was exported
	// with (tokens beyond it are truncated, shorter inputs padded).
	MaxSeqLen int
	// NumLabels is the expected width of the logits output.
	NumLabels int
}

// Encoder wraps a tokenizer plus an ONNX session for batched inference.
type Encoder struct {
	mu        sync.Mutex
	tk        *tokenizer.Tokenizer
	sess      *ort.DynamicAdvancedSession
	maxSeqLen int
	numLabels int
}

// Init loads the tokenizer and opens the model session.
func (e *Encoder) Init(cfg Config) error {
	if cfg.ModelPath == "" {
		return errors.New("model path is required")
	}
	if cfg.TokenizerPath == "" {
		return errors.New("tokenizer path is required")
	}
	if cfg.NumLabels <= 0 {
		return errors.New("label count is required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 128
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return fmt.Errorf("load tokenizer: %w", err)
	}

	if cfg.OrtDLL != "" {
		ort.SetSharedLibraryPath(cfg.OrtDLL)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("init onnxruntime: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		nil,
	)
	if err != nil {
		return fmt.Errorf("open model session: %w", err)
	}

	e.tk = tk
	e.sess = sess
	e.maxSeqLen = cfg.MaxSeqLen
	e.numLabels = cfg.NumLabels
	return nil
}

// Predict returns one probability per label for each text, in input
// order. Labels are independent, so logits pass through a sigmoid, not a
// softmax. Session runs are serialized: ORT sessions are not guaranteed
// safe for concurrent Run.
func (e *Encoder) Predict(texts []string) ([][]float32, error) {
	if e == nil || e.sess == nil {
		return nil, errors.New("encoder is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	batch := len(texts)
	ids := make([]int64, batch*e.maxSeqLen)
	mask := make([]int64, batch*e.maxSeqLen)
	for i, text := range texts {
		en, err := e.tk.EncodeSingle(text, true)
		if err != nil {
			return nil, fmt.Errorf("tokenize text %d: %w", i, err)
		}
		seq := en.Ids
		if len(seq) > e.maxSeqLen {
			seq = seq[:e.maxSeqLen]
		}
		off := i * e.maxSeqLen
		for j, id := range seq {
			ids[off+j] = int64(id)
			mask[off+j] = 1
		}
	}

	shape := ort.NewShape(int64(batch), int64(e.maxSeqLen))
	inputIDs, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer inputIDs.Destroy()
	attnMask, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("create mask tensor: %w", err)
	}
	defer attnMask.Destroy()

	outputs := []ort.Value{nil}
	e.mu.Lock()
	err = e.sess.Run([]ort.Value{inputIDs, attnMask}, outputs)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("unexpected logits tensor type")
	}
	defer logitsTensor.Destroy()

	logits := logitsTensor.GetData()
	if len(logits) != batch*e.numLabels {
		return nil, fmt.Errorf("model returned %d logits, expected %d", len(logits), batch*e.numLabels)
	}
	out := make([][]float32, batch)
	for i := range out {
		row := make([]float32, e.numLabels)
		for j := 0; j < e.numLabels; j++ {
			row[j] = sigmoid(logits[i*e.numLabels+j])
		}
		out[i] = row
	}
	return out, nil
}

// Close releases the ONNX session.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess != nil {
		e.sess.Destroy()
		e.sess = nil
	}
}

func sigmoid(v float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(v))))
}
