package scoring

// Bucket labels a percentage score.
type Bucket string

const (
	BucketCritical    Bucket = "critical"
	BucketDeveloping  Bucket = "developing"
	BucketEstablished Bucket = "established"
	BucketLeading     Bucket = "leading"
)

// BucketFor returns the band a percentage falls in.
func BucketFor(pct float64) Bucket {
	switch {
	case pct < 40:
		return BucketCritical
	case pct < 60:
		return BucketDeveloping
	case pct < 80:
		return BucketEstablished
	default:
		return BucketLeading
	}
}

// Label returns a display label for the bucket.
func (b Bucket) Label() string {
	switch b {
	case BucketCritical:
		return "Critical"
	case BucketDeveloping:
		return "Developing"
	case BucketEstablished:
		return "Established"
	case BucketLeading:
		return "Leading"
	default:
		return string(b)
	}
}
