package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Command level messages (info)
		"Interrupted, shutting down...":      "中断されました。シャットダウン中...",
		"Using %s decoding backend":          "デコードバックエンド %s を使用します",
		"Frame rate of %s written to %s":     "%s のフレームレートを %s に書き込みました",
		"Extracting every %d frames from %s": "%[2]s から %[1]d フレームごとに抽出中",
		"Output saved to %s":                 "出力を %s に保存しました",
		"Saved %d frames to %s":              "%d フレームを %s に保存しました",
		"Summary saved to %s":                "サマリーを %s に保存しました",
		"Contact sheet saved to %s":          "コンタクトシートを %s に保存しました",
		"Using annotated frame rate %.3f":    "アノテーションのフレームレート %.3f を使用します",

		// Sampler
		"Extracted %d frames every %d frames from %s": "%[3]s から %[2]d フレームごとに %[1]d フレームを抽出しました",
		"Read stopped at frame %d: %v":                "フレーム %d で読み込みを終了しました: %v",
		"Seek to frame %d failed: %v":                 "フレーム %d へのシークに失敗しました: %v",

		// Probe
		"Read %.3f fps from %s container (%s, %d frames)":              "%[2]s のコンテナから %.3[1]f fps を取得しました (%[3]s, %[4]d フレーム)",
		"Decoder could not open %s, reading the container instead: %v": "デコーダーで %s を開けないため、コンテナから取得します: %v",

		// Contact sheet
		"Contact sheet layout: %dx%d, %d rows": "コンタクトシートのレイアウト: %dx%d, %d 行",

		// Warnings
		"Frame rate unavailable, timestamps are omitted: %v": "フレームレートを取得できないため、タイムスタンプを省略します: %v",
		"Skipping contact sheet: %d frames at %.3f fps":      "コンタクトシートを省略します: %d フレーム, %.3f fps",

		// Errors
		"Failed to extract frames: %v":      "フレームの抽出に失敗しました: %v",
		"Failed to save frame %d: %v":       "フレーム %d の保存に失敗しました: %v",
		"Failed to build contact sheet: %v": "コンタクトシートの作成に失敗しました: %v",
		"Failed to save contact sheet: %v":  "コンタクトシートの保存に失敗しました: %v",
		"Failed to write summary: %v":       "サマリーの書き込みに失敗しました: %v",
	})
}
