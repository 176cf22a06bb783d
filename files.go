package main

import "os"

// FileSystem is the collaborator behind .import, .export, .read, and .write.
type FileSystem interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
}

// osFiles reads and writes host files, paths relative to the working directory.
type osFiles struct{}

func (osFiles) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func (osFiles) WriteText(path, text string) error {
	return os.WriteFile(path, []byte(text), 0666)
}
