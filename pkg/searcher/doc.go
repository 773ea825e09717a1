// Package searcher provides the ranking primitives for hybrid star search.
//
// Three scorers operate over a shared corpus, addressed by document index:
//
//   - [BM25]: lexical scoring over whitespace-tokenized search text
//   - [SimilarityAll]: cosine similarity against document embeddings
//   - [FuseRRF]: Reciprocal Rank Fusion of the two rank orders
//
// [SubstringRank] is the last-resort scorer used when no index could be
// built at all.
//
// Every function is deterministic: equal scores keep ascending document
// order, so the same corpus and query always produce the same ranking.
// The package holds no state beyond the immutable BM25 index and performs
// no I/O; callers own embedding calls and corpus loading.
package searcher
