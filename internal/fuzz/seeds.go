package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// builtinSeeds cover every check at least once, plus broken input.
var builtinSeeds = []string{
	"",
	"<?php\n",
	"<html><?php echo 1; ?>\n</html>",
	"<?php\n$a=1;\n$b = [\n    1,\n    2\n];\n",
	"<?php\nfunction sum($a,$b) {\n    $c = $a+$b;\n    return $c;\n}\n",
	"<?php\nclass Foo\n{\n    function bar()\n    {\n    }\n    private $x;\n    public function baz() {\n\n    }\n}\nclass Bar {}\n",
	"<?php\ninterface Foo {}\ntrait Bar {}\nclass Baz extends \\RuntimeException {}\n",
	"<?php\n/**\n * @param int $a\n */\nfunction f($a, $b) {\n    if ($a) {\n        return $b;\n    }\n    $x = function () { return 1; };\n    return $x;   \n}\n",
	"<?php\ndeclare(strict_types=1);\n$a = array(\n  'k' => 'v'\n);\n",
	"<?php\n$s = 'unterminated",
	"<?php\n/* open comment",
	"<?php\nfunction f() {\n",
	"<?php\n}}}))]]\n",
	"<?php\r\n$a=1;\r\n",
	"\xef\xbb\xbf<?php\n$a=1;\n",
	"<?php\n$a =\u00a01;\n",
	"<?php\necho 1 \u2014 2;\n",
	"<?php\u0338",
	"<?php\n$cafe\u0301 = $\u00a0;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.php файлы
	//nolint:errcheck // walk errors only shrink the corpus
	filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".php" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
