package driver

import (
	"sniff/internal/lexer"
	"sniff/internal/source"
	"sniff/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	// Err holds tokenizer errors; Tokens are still filled.
	Err error
}

// Tokenize loads one file and runs the lexer over it.
func Tokenize(path string) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	tokens, lexErr := lexer.Tokenize(file)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Err:     lexErr,
	}, nil
}
