package media

// Unknown is the placeholder for metadata the probe did not report
const Unknown = "unknown"

// MediaInfo is a read-only snapshot of probed file metadata.
// When probing fails only Error is set.
type MediaInfo struct {
	Filename     string
	Size         string
	Duration     float64
	FormatName   string
	VideoCodec   string
	AudioCodec   string
	AudioBitrate string
	SampleRate   string
	Error        string
}

// Failed returns true if the probe did not produce metadata
func (m MediaInfo) Failed() bool {
	return m.Error != ""
}

// ProbeStream is a single stream entry of a probe result
type ProbeStream struct {
	CodecType  string
	CodecName  string
	BitRate    string
	SampleRate string
}

// ProbeFormat is the container section of a probe result
type ProbeFormat struct {
	FormatName string
	Duration   string
	Size       string
}

// ProbeResult is the structured document returned by a Prober
type ProbeResult struct {
	Format  ProbeFormat
	Streams []ProbeStream
}

// FirstStream returns the first stream of the given codec type, or nil if there is none
func (p *ProbeResult) FirstStream(codecType string) *ProbeStream {
	for i := range p.Streams {
		if p.Streams[i].CodecType == codecType {
			return &p.Streams[i]
		}
	}
	return nil
}
