/*
Package kmeans clusters text documents with k-means.

It turns per-document term frequencies into unit-length vectors over a shared
vocabulary and partitions them into k clusters with Lloyd's algorithm. The
engine is generic over the element type: any type works given a Metric and an
Aggregator for it.

# Quick Start

Cluster a handful of documents into two groups:

	package main

	import (
	    "context"
	    "fmt"
	    "log"

	    "github.com/wizenheimer/kmeans"
	)

	func main() {
	    stop := kmeans.NewStopWords("the", "a", "of")
	    texts := []string{
	        "the cat sat on the mat",
	        "a cat and a kitten",
	        "stocks fell as markets slid",
	        "markets rallied and stocks rose",
	    }

	    corpus := make([]kmeans.Frequencies, len(texts))
	    for i, t := range texts {
	        corpus[i] = kmeans.CountTerms(t, stop)
	    }

	    vocab, err := kmeans.BuildVocabulary(corpus, 0)
	    if err != nil {
	        log.Fatal(err)
	    }
	    vectors, err := kmeans.VectorizeAll(vocab, corpus, nil)
	    if err != nil {
	        log.Fatal(err)
	    }

	    cfg := kmeans.DefaultConfig()
	    cfg.Seed = 42
	    res, err := kmeans.Cluster(context.Background(), vectors, 2,
	        kmeans.CosineMetric, kmeans.Mean, kmeans.WeightedSampling[kmeans.Vector], cfg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    for c := range res.Clusters {
	        fmt.Printf("cluster %d: %v\n", c, res.Members(c))
	    }
	}

# Vocabulary and Vectors

BuildVocabulary ranks terms by their total corpus count and trims both ends,
removing very rare and very common terms:

	vocab, _ := kmeans.BuildVocabulary(corpus, 10) // drop 5% at each end

Vectorize maps one document onto the vocabulary and normalizes it. Optional
weights scale each term before normalization:

	v, err := kmeans.Vectorize(vocab, corpus[0], vocab.IDF(corpus))

A document sharing no term with the vocabulary fails with ErrZeroNormVector;
the caller decides whether to drop it.

# Distance Metrics

Three metrics are provided for Vector. All of them are distances (smaller is
closer) and the engine minimizes them:

Cosine: 1 - cosine similarity. The default for document vectors.

	metric, _ := kmeans.NewMetric(kmeans.Cosine)

Euclidean (L2): straight-line distance.

	metric, _ := kmeans.NewMetric(kmeans.Euclidean)

SquaredEuclidean: L2 without the sqrt; same ordering, cheaper.

	metric, _ := kmeans.NewMetric(kmeans.SquaredEuclidean)

# Initialization

UniformSampling picks k distinct elements at random. WeightedSampling is
kmeans++: each new centroid is drawn with probability proportional to its
squared distance from the nearest centroid already chosen, which spreads the
starting centroids out.

# Reproducibility

Every random decision of a run (seeding, tie-breaking, reseeding of empty
clusters) comes from a generator seeded with Config.Seed. Two runs with the
same seed and inputs return identical results.
*/
package kmeans
