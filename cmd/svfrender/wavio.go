package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

func readWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("svfrender: %s is not a valid WAV file", path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("svfrender: %s: only integer PCM is supported (format %d)", path, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("svfrender: decode %s: %w", path, err)
	}
	buf.SourceBitDepth = int(dec.BitDepth)
	return buf, nil
}

func writeWAV(path string, buf *audio.IntBuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("svfrender: encode %s: %w", path, err)
	}
	return enc.Close()
}
