// Package main provides localization for the videodocs CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",
		"Input":         "入力",
		"Sampling":      "サンプリング",
		"Conversion":    "変換",
		"Output":        "出力",
		"Reports":       "レポート",

		// Root command
		"Work with video documents in MMIF files": "MMIFファイル内の動画ドキュメントを扱います",
		"Error: %s": "エラー: %s",

		// Global flags
		"YAML configuration file":              "YAML設定ファイル",
		"Decoding backend (auto, vidio, gocv)": "デコードバックエンド（auto, vidio, gocv）",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Input flags
		"MMIF file holding the video document":          "動画ドキュメントを含むMMIFファイル",
		"Id of the video document in the MMIF file":     "MMIFファイル内の動画ドキュメントのID",
		"Video file to use instead of an MMIF document": "MMIFドキュメントの代わりに使用する動画ファイル",
		"Keep one frame out of every N":                 "Nフレームごとに1フレームを残す",

		// Framerate command
		"Print the frame rate of a video document":                              "動画ドキュメントのフレームレートを表示",
		"Ignore frame rates recorded in annotations":                            "アノテーションに記録されたフレームレートを無視",
		"Store the decoded frame rate on the document and save the MMIF here": "デコードしたフレームレートをドキュメントに記録し、MMIFをここに保存",

		// Convert command
		"Convert between frame counts and time for a video document": "動画ドキュメントのフレーム数と時間を相互変換",
		"Frame count to convert to seconds and milliseconds":         "秒とミリ秒に変換するフレーム数",
		"Seconds to convert to a frame count":                        "フレーム数に変換する秒数",
		"Milliseconds to convert to a frame count":                   "フレーム数に変換するミリ秒数",

		// Extract command
		"Save every Nth frame of a video document as images":         "動画ドキュメントのNフレームごとに画像として保存",
		"Stop after retaining this many frames":                      "この数のフレームを残したら終了",
		"Directory for the extracted frames (required)":              "抽出したフレームの出力ディレクトリ（必須）",
		"Image format (png, jpeg)":                                   "画像形式（png, jpeg）",
		"JPEG quality (1-100)":                                       "JPEG品質（1-100）",
		"Scale frames to this width (0 keeps the source size)":       "フレームをこの幅に縮小（0 は元のサイズ）",
		"Also render a contact sheet to this file":                   "コンタクトシートをこのファイルにも出力",
		"Write an extraction summary (Markdown, or YAML for .yaml)": "抽出サマリーを出力（Markdown、.yaml なら YAML）",

		// Version command
		"Show version information": "バージョン情報を表示",
		"videodocs version %s":     "videodocs バージョン %s",

		// Runtime messages
		"No decoding backend: %v": "デコードバックエンドがありません: %v",

		// Summary content
		"Extraction Summary": "抽出サマリー",
		"Source":             "ソース",
		"Video":              "動画",
		"Extraction":         "抽出",
		"Frames":             "フレーム",
		"Item":               "項目",
		"Value":              "値",
		"Document":           "ドキュメント",
		"Location":           "場所",
		"MMIF File":          "MMIFファイル",
		"Frame Rate":         "フレームレート",
		"annotation":         "アノテーション",
		"video":              "動画",
		"Codec":              "コーデック",
		"Resolution":         "解像度",
		"Frames in Video":    "動画のフレーム数",
		"Sample Ratio":       "サンプル間隔",
		"Frame Cutoff":       "フレーム上限",
		"None":               "なし",
		"Frames Retained":    "抽出フレーム数",
		"Format":             "形式",
		"Output Directory":   "出力ディレクトリ",
		"Output Size":        "出力サイズ",
		"Contact Sheet":      "コンタクトシート",
		"Time":               "時刻",
		"File":               "ファイル",
		"Generated at":       "生成日時",
	})
}
