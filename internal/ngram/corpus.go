package ngram

import (
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/tokenize"
)

// Document is the token sequence of one record.
type Document struct {
	Pagetype string
	Tokens   []string
}

// Corpus holds the tokenized content field of every record of a dataset.
// It is read-only after construction.
type Corpus struct {
	field model.Field
	docs  []Document
}

// NewCorpus tokenizes the given field of every record once.
// Records whose field yields no tokens are kept with an empty sequence.
func NewCorpus(ds *model.Dataset, field model.Field, tok *tokenize.Tokenizer) *Corpus {
	c := &Corpus{
		field: field,
		docs:  make([]Document, ds.Len()),
	}
	for i := range ds.Len() {
		r := ds.Record(i)
		c.docs[i] = Document{
			Pagetype: r.Pagetype,
			Tokens:   tok.Tokenize(r.Value(field)),
		}
	}
	return c
}

// Field returns the content field the corpus was built from.
func (c *Corpus) Field() model.Field {
	return c.field
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Documents returns the documents in dataset order.
// Callers must not modify the returned slice.
func (c *Corpus) Documents() []Document {
	return c.docs
}
