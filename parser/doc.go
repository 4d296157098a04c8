// Package parser decodes structured output returned by language models.
// Models are asked for bare JSON but often wrap it in Markdown code
// fences or surrounding prose; the helpers here normalize that before
// strict decoding.
package parser
