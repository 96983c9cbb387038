package llmobs

import (
	"context"
	"time"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/trace"
)

// observableGenerator wraps a Generator with observability (logging & tracing)
type observableGenerator struct {
	gen interfaces.Generator
}

// Compile-time interface check
var _ interfaces.Generator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(gen interfaces.Generator) interfaces.Generator {
	return &observableGenerator{
		gen: gen,
	}
}

func (og *observableGenerator) Name() string {
	return og.gen.Name()
}

func (og *observableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	fields := []any{
		"provider", og.gen.Name(),
		"prompt_chars", len(prompt),
	}
	if logger.IsDebugEnabled() {
		fields = append(fields, "prompt", prompt)
	}
	logger.Debug(ctx, "Requesting model completion", fields...)

	start := time.Now()
	out, err := og.gen.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr(ctx, "Model completion failed", err,
			"provider", og.gen.Name(),
		)
		return "", err
	}

	logger.Info(ctx, "Model completion received",
		"provider", og.gen.Name(),
		"output_chars", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return out, nil
}
