
// Package fuzztests houses Go fuzz harnesses that exercise the check
// pipeline (source -> lexer -> stream -> checks -> fixer) on arbitrary
// input. Its goal is to guard against panics, hangs and fixer loops that
// break the token tiling.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// Analyze и Fix со всем каталогом проверок.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/engine,
// internal/rules, internal/testkit.

package fuzztests
